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

package osmx

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func BenchmarkAggregate(b *testing.B) {
	data, err := os.ReadFile("testdata/sample.osm")
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		parse := Start(context.Background(), bytes.NewReader(data))
		if _, err := parse.Wait(); err != nil {
			b.Fatal(err)
		}
	}
}
