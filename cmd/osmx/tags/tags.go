// Copyright 2025-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmx"
	"m4o.io/osmx/cmd/osmx/cli"
	"m4o.io/osmx/internal/osmfile"
	"m4o.io/osmx/model"
)

var (
	out io.Writer = os.Stdout

	kind *model.Kind
)

func init() {
	cli.RootCmd.AddCommand(tagsCmd)

	flags := tagsCmd.Flags()
	flags.StringP("key", "k", "", "rank the values recorded for this tag key")
	flags.StringP("value", "v", "", "list the objects tagged key=value (needs --key)")
	flags.Var(cli.NewKindValue(nil, &kind), "kind", "limit the object listing to node, way or relation")
	flags.IntP("top", "t", 0, "print only the first n entries")
	flags.BoolP("json", "j", false, "format the listing in JSON")
	flags.BoolP("wiki", "w", false, "render objects as wiki citations")
}

var tagsCmd = &cobra.Command{
	Use:   "tags [<OSM file>]",
	Short: "Rank the tags of an OSM file",
	Long:  "Rank the tags of an OSM file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File
		var err error
		if len(args) == 1 {
			f, err = os.Open(args[0])
			if err != nil {
				log.Fatal(err)
			}
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		stats := runTags(in, in.SetElements)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		key, err := flags.GetString("key")
		if err != nil {
			log.Fatal(err)
		}

		value, err := flags.GetString("value")
		if err != nil {
			log.Fatal(err)
		}

		if value != "" && key == "" {
			log.Fatal("--value needs --key")
		}

		top, err := flags.GetInt("top")
		if err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		wiki, err := flags.GetBool("wiki")
		if err != nil {
			log.Fatal(err)
		}

		switch {
		case key == "":
			keys := cli.Clip(stats.KeysByCount(), top)
			if jsonfmt {
				renderJSON(keys)
			} else {
				renderKeysTxt(keys)
			}
		case value == "":
			values := cli.Clip(stats.ValuesForKey(key), top)
			if jsonfmt {
				renderJSON(values)
			} else {
				renderValuesTxt(values)
			}
		default:
			objects := stats.ObjectsFor(key, value)
			if kind != nil {
				objects = filterKind(objects, *kind)
			}
			objects = cli.Clip(objects, top)

			switch {
			case jsonfmt:
				renderJSON(objects)
			case wiki:
				renderWiki(objects)
			default:
				renderObjectsTxt(objects)
			}
		}
	},
}

// runTags aggregates the whole input, reporting running element counts to
// progress as the scan advances.
func runTags(in io.Reader, progress func(count int64)) *osmx.TagStats {
	rdr, err := osmfile.NewReader(in)
	if err != nil {
		log.Fatal(err)
	}

	parse := osmx.Start(context.Background(), rdr)

	for count := range parse.Progress() {
		progress(count)
	}

	stats, err := parse.Wait()
	if err != nil {
		log.Fatal(err)
	}

	return stats
}

func filterKind(objects []model.ObjectRef, kind model.Kind) []model.ObjectRef {
	var filtered []model.ObjectRef

	for _, o := range objects {
		if o.Kind == kind {
			filtered = append(filtered, o)
		}
	}

	return filtered
}

func renderJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderKeysTxt(keys []model.KeyCount) {
	for _, kc := range keys {
		fmt.Fprintf(out, "%s: %s\n", kc.Key, humanize.Comma(kc.Count))
	}
}

func renderValuesTxt(values []model.ValueCount) {
	for _, vc := range values {
		fmt.Fprintf(out, "%s: %s\n", vc.Value, humanize.Comma(vc.Count))
	}
}

func renderObjectsTxt(objects []model.ObjectRef) {
	for _, o := range objects {
		fmt.Fprintf(out, "%s %s %s\n", o.Kind, o.ID, o.Name)
	}
}

func renderWiki(objects []model.ObjectRef) {
	for _, o := range objects {
		fmt.Fprintln(out, o.Citation())
	}
}
