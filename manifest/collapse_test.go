package manifest

import (
	"testing"

	"github.com/cratekit/manifest-format/encode"
	"github.com/cratekit/manifest-format/parse"
)

type collapseTest struct {
	name string
	in   string
	want string
	n    int
}

func TestCollapseTable(t *testing.T) {
	cts := []collapseTest{
		{
			name: "simple",
			in: `[dependencies]
[dependencies.serde]
version = "1.0"
features = ["derive"]
`,
			want: `[dependencies]
serde = { version = "1.0", features = ["derive"] }
`,
			n: 1,
		},
		{
			name: "implicit parent gains header",
			in: `[dependencies.tokio]
version = "1.37"
`,
			want: `[dependencies]
tokio = { version = "1.37" }
`,
			n: 1,
		},
		{
			name: "empty nested table",
			in: `[dependencies]
[dependencies.placeholder]
`,
			want: `[dependencies]
placeholder = {}
`,
			n: 1,
		},
		{
			name: "deeper table resists",
			in: `[dependencies.complex]
version = "1"

[dependencies.complex.nested]
x = 1
`,
			want: `[dependencies.complex]
version = "1"

[dependencies.complex.nested]
x = 1
`,
			n: 0,
		},
		{
			name: "dotted entry resists",
			in: `[dependencies.odd]
package.name = "x"
`,
			want: `[dependencies.odd]
package.name = "x"
`,
			n: 0,
		},
		{
			name: "comments travel",
			in: `[dependencies]
# pinned for msrv
[dependencies.serde]
version = "1.0"
`,
			want: `[dependencies]
# pinned for msrv
serde = { version = "1.0" }
`,
			n: 1,
		},
		{
			name: "inner comments kept as lead lines",
			in: `[dependencies]
[dependencies.serde]
# msrv floor
version = "1.0" # pinned
features = ["derive"]
`,
			want: `[dependencies]
# msrv floor
# pinned
serde = { version = "1.0", features = ["derive"] }
`,
			n: 1,
		},
		{
			name: "quoted key kept raw",
			in: `[dependencies."my-fork"]
version = "0.1"
`,
			want: `[dependencies]
"my-fork" = { version = "0.1" }
`,
			n: 1,
		},
	}
	for _, ct := range cts {
		t.Run(ct.name, func(t *testing.T) {
			doc, err := parse.Parse([]byte(ct.in))
			if err != nil {
				t.Fatal(err)
			}
			deps := doc.Root.Sub("dependencies")
			if deps == nil {
				t.Fatal("no [dependencies]")
			}
			if n := CollapseTable(deps); n != ct.n {
				t.Errorf("collapsed %d, want %d", n, ct.n)
			}
			if got := encode.String(doc); got != ct.want {
				t.Errorf("output:\n got  %q\n want %q", got, ct.want)
			}
		})
	}
}

func TestCollapseSkipsArrayTables(t *testing.T) {
	in := `[[bin]]
name = "a"
`
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if n := CollapseTable(doc.Root); n != 0 {
		t.Errorf("collapsed %d array tables", n)
	}
	if got := encode.String(doc); got != in {
		t.Errorf("output changed: %q", got)
	}
}
