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

package census

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmx/cmd/osmx/cli"
	"m4o.io/osmx/history"
	"m4o.io/osmx/internal/osmfile"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(censusCmd)

	flags := censusCmd.Flags()
	flags.IntP("top", "t", 0, "print only the first n entries of each ranking")
	flags.BoolP("json", "j", false, "format the report in JSON")
}

var censusCmd = &cobra.Command{
	Use:   "census [<OSM file>]",
	Short: "Summarize the edit history of an OSM file",
	Long:  "Summarize the edit history of an OSM file",
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

		rpt := runCensus(in)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		top, err := flags.GetInt("top")
		if err != nil {
			log.Fatal(err)
		}

		rpt.Tags = cli.Clip(rpt.Tags, top)
		rpt.Contributors = cli.Clip(rpt.Contributors, top)
		rpt.Lifespans = cli.Clip(rpt.Lifespans, top)

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(rpt)
		} else {
			renderTxt(rpt)
		}
	},
}

// runCensus analyzes the whole input in one blocking pass.
func runCensus(in io.Reader) *history.Report {
	rdr, err := osmfile.NewReader(in)
	if err != nil {
		log.Fatal(err)
	}

	rpt, err := history.Analyze(rdr)
	if err != nil {
		log.Fatal(err)
	}

	return rpt
}

func renderJSON(rpt *history.Report) {
	b, err := json.Marshal(rpt)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderTxt(rpt *history.Report) {
	fmt.Fprintf(out, "Oldest: %s\n", rpt.Oldest.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "Newest: %s\n", rpt.Newest.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "Nodes: %s\n", humanize.Comma(rpt.Nodes))
	fmt.Fprintf(out, "Ways: %s\n", humanize.Comma(rpt.Ways))
	fmt.Fprintf(out, "Relations: %s\n", humanize.Comma(rpt.Relations))

	if rpt.Extent != nil {
		fmt.Fprintf(out, "Extent: %s\n", rpt.Extent)
	}

	fmt.Fprintf(out, "Tags:\n")

	for _, kc := range rpt.Tags {
		fmt.Fprintf(out, "  %s: %s\n", kc.Key, humanize.Comma(kc.Count))
	}

	fmt.Fprintf(out, "Contributors:\n")

	for _, c := range rpt.Contributors {
		fmt.Fprintf(out, "  %s: %s\n", c.User, humanize.Comma(c.Edits))
	}

	fmt.Fprintf(out, "Lifespans:\n")

	for _, l := range rpt.Lifespans {
		fmt.Fprintf(out, "  %s: %s\n", l.User, l.Span)
	}
}
