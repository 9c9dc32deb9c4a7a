package parse

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cratekit/manifest-format/encode"
)

// roundTrips is the contract everything else builds on: an unmodified
// document re-serializes to its exact input bytes.
func TestRoundTrip(t *testing.T) {
	ins := []string{
		"",
		"# just a comment\n",
		"key = \"value\"\n",
		"[package]\nname = \"demo\"\n",
		`# workspace manifest

[package]
name = "demo"   # the name
version = "0.1.0"

# dependency block
[dependencies]
serde = { version = "1.0", features = ["derive"] }

[dependencies.tokio]
version = "1.37"
features = [
    "rt",
    "macros",
]

[[bin]]
name = "demo"
path = "src/main.rs"

[[bin]]
name = "helper"

[target.'cfg(unix)'.dependencies]
libc = "0.2"

# trailing notes
`,
		"no_newline = true",
		"[a]\n\n\n[b]\nx = 1\n\n",
		"[features]\ndefault = []\n\"weird.key\" = []\n",
	}
	for _, in := range ins {
		doc, err := Parse([]byte(in))
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if got := encode.String(doc); got != in {
			t.Errorf("round trip:\n got  %q\n want %q", got, in)
		}
	}
}

func TestParseTree(t *testing.T) {
	in := `top = 1

[package]
name = "demo"

[dependencies.serde]
version = "1.0"

[target.'cfg(unix)'.dependencies]
libc = "0.2"

[[bin]]
name = "a"

[[bin]]
name = "b"
`
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if e := doc.Root.Entry("top"); e == nil || e.RawValue != "1" {
		t.Errorf("root entry: %+v", e)
	}
	pkg := doc.Root.Sub("package")
	if pkg == nil || pkg.Entry("name") == nil {
		t.Fatal("missing [package]")
	}
	deps := doc.Root.Sub("dependencies")
	if deps == nil || !deps.Implicit {
		t.Fatalf("dependencies should be implicit: %+v", deps)
	}
	serde := deps.Sub("serde")
	if serde == nil || serde.Entry("version") == nil {
		t.Fatal("missing [dependencies.serde]")
	}
	target := doc.Root.Sub("target")
	if target == nil || target.Sub("cfg(unix)") == nil {
		t.Fatal("missing target tree")
	}
	bins := doc.Root.Array("bin")
	if bins == nil || len(bins.Tables) != 2 {
		t.Fatalf("bin array: %+v", bins)
	}
	want := []string{"package", "dependencies", "target", "bin"}
	if got := doc.Sections(); !reflect.DeepEqual(got, want) {
		t.Errorf("sections: got %v, want %v", got, want)
	}
}

func TestImplicitPromotion(t *testing.T) {
	in := `[a.b]
x = 1

[a]
y = 2
`
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root.Sub("a")
	if a == nil || a.Implicit {
		t.Fatalf("a should be explicit: %+v", a)
	}
	b := a.Sub("b")
	if b == nil || b.Pos > a.Pos {
		t.Errorf("promoted header serializes after its child: a=%d b=%d", a.Pos, b.Pos)
	}
	if got := encode.String(doc); got != in {
		t.Errorf("round trip:\n got  %q\n want %q", got, in)
	}
}

func TestParseErrors(t *testing.T) {
	pts := []string{
		"[a]\nx = 1\nx = 2\n",
		"[a]\n[a]\n",
		"[[a]]\n[a]\n",
		"[a]\n[[a]]\n",
		// a header may not redefine an existing binding
		"[dependencies]\nfoo = \"1\"\n\n[dependencies.foo]\nversion = \"2\"\n",
		"[dependencies]\nfoo.version = \"1\"\n\n[dependencies.foo]\nfeatures = []\n",
		"[a]\nb = 1\n\n[a.b.c]\nx = 2\n",
		"b = 1\n[[b]]\n",
		// nor may a binding shadow an existing table or array group
		"[a.b]\nx = 1\n\n[a]\nb = 2\n",
		"[[t.arr]]\nx = 1\n\n[t]\narr = 1\n",
		// dotted and plain forms of the same leading key exclude
		// each other
		"[a]\nfoo = 1\nfoo.bar = 2\n",
		"[a]\nfoo.bar = 2\nfoo = 1\n",
	}
	for _, in := range pts {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q): got %v, want ErrParse", in, err)
		}
	}
}
