package parser

import (
	"testing"

	"github.com/felix-lang/felixcore/internal/testutil"
	"github.com/felix-lang/felixcore/internal/tree"
)

// TestParseCorpusSmokeIsLossless runs every fixture under
// testdata/corpus/smoke through Parse and checks the lossless-reassembly
// invariant holds regardless of whether the fixture is well-formed —
// malformed.felix exists specifically to exercise error recovery.
func TestParseCorpusSmokeIsLossless(t *testing.T) {
	t.Parallel()

	paths, err := testutil.CorpusFiles("smoke")
	if err != nil {
		t.Fatalf("CorpusFiles: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected at least one corpus fixture")
	}

	for _, path := range paths {
		path := path
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			src := testutil.ReadFile(t, path)

			res := Parse(src)
			root := tree.NewRoot(res.Root)

			var collect func(r *tree.Red, buf *[]byte)
			collect = func(r *tree.Red, buf *[]byte) {
				if r.Green().IsToken() {
					*buf = append(*buf, r.Text(src)...)
					return
				}
				for _, c := range r.Children() {
					collect(c, buf)
				}
			}
			var buf []byte
			collect(root, &buf)
			if string(buf) != string(src) {
				t.Fatalf("reassembly mismatch for %s", path)
			}
		})
	}
}
