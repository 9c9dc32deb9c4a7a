package manifest

import (
	"testing"

	"github.com/cratekit/manifest-format/encode"
	"github.com/cratekit/manifest-format/parse"
)

func TestOrderPackage(t *testing.T) {
	pts := []struct {
		name  string
		in    string
		want  string
		order []string
		n     int
	}{
		{
			name: "canonical input untouched",
			in: `[package]
name = "demo"
version = "0.1.0"
edition = "2021"
`,
			want: `[package]
name = "demo"
version = "0.1.0"
edition = "2021"
`,
			n: 0,
		},
		{
			name: "canonical keys pulled forward",
			in: `[package]
edition = "2021"
name = "demo"
repository = "https://example.com/demo"
version = "0.1.0"
description = "a demo"
`,
			want: `[package]
name = "demo"
description = "a demo"
version = "0.1.0"
edition = "2021"
repository = "https://example.com/demo"
`,
			n: 1,
		},
		{
			name: "unknown keys keep relative order",
			in: `[package]
zeta = 1
alpha = 2
name = "demo"
`,
			want: `[package]
name = "demo"
zeta = 1
alpha = 2
`,
			n: 1,
		},
		{
			name: "comments travel with their key",
			in: `[package]
# how old
edition = "2021"
# who
name = "demo"
`,
			want: `[package]
# who
name = "demo"
# how old
edition = "2021"
`,
			n: 1,
		},
		{
			name: "custom order",
			in: `[package]
name = "demo"
version = "0.1.0"
`,
			want: `[package]
version = "0.1.0"
name = "demo"
`,
			order: []string{"version", "name"},
			n:     1,
		},
	}
	for _, pt := range pts {
		t.Run(pt.name, func(t *testing.T) {
			doc, err := parse.Parse([]byte(pt.in))
			if err != nil {
				t.Fatal(err)
			}
			pkg := doc.Root.Sub("package")
			if n := OrderPackage(pkg, pt.order); n != pt.n {
				t.Errorf("changed %d, want %d", n, pt.n)
			}
			if got := encode.String(doc); got != pt.want {
				t.Errorf("output:\n got  %q\n want %q", got, pt.want)
			}
		})
	}
}
