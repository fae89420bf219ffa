package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalGFF3 = `# some comment
# another comment
chr1	test	gene	1	100	.	+	.	attrs
chr1	test	gene	1	100	.	+	.	attrs
chr1	test	gene	1	100	.	+	.	attrs
chr1	test	transcript	10	90	.	+	.	foo=bar;ID=transcript1;baz=quux
chr1	test	exon	20	30	.	+	.	ID=ex1;Parent=transcript1
chr1	test	exon	35	40	.	+	.	ID=ex2;Parent=transcript1
chr1	test	CDS	20	25	.	+	2	Parent=transcript1;ID=cds1;bla=bla
chr1	test	CDS	38	40	.	+	1	bla=bla;Parent=transcript1;ID=cds2
chr2	test	transcript	10	90	.	+	.	foo=bar;ID=transcript2;baz=quux
chr2	test	exon	20	30	.	+	.	ID=ex3;Parent=transcript2
chr2	test	exon	35	40	.	+	.	ID=ex4;Parent=transcript2
chr2	test	CDS	20	25	.	+	2	Parent=transcript2;ID=cds2;bla=bla
chr2	test	CDS	38	40	.	+	1	bla=bla;Parent=transcript2;ID=cds3
`

func TestTransformGFF3AnnotationsCanonicalFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.gff3")
	require.NoError(t, os.WriteFile(path, []byte(canonicalGFF3), 0o644))

	annos, err := TransformGFF3Annotations(path, "")
	require.NoError(t, err)
	require.Len(t, annos, 2)

	a := annos[0]
	assert.Equal(t, "transcript1", a.Name)
	assert.Equal(t, "chr1", a.Chr)
	assert.Equal(t, Interval{Start: 9, Stop: 90}, a.Range)
	require.Len(t, a.Exons, 2)
	assert.Equal(t, Interval{Start: 19, Stop: 30}, a.Exons[0])
	assert.Equal(t, Interval{Start: 34, Stop: 40}, a.Exons[1])
	require.Len(t, a.CDSs, 2)
	assert.Equal(t, Interval{Start: 19, Stop: 25}, a.CDSs[0].Range)
	assert.Equal(t, PhaseTwo, a.CDSs[0].Phase)
	assert.Equal(t, Interval{Start: 37, Stop: 40}, a.CDSs[1].Range)
	assert.Equal(t, PhaseOne, a.CDSs[1].Phase)

	b := annos[1]
	assert.Equal(t, "transcript2", b.Name)
	assert.Equal(t, "chr2", b.Chr)
	assert.Equal(t, Interval{Start: 9, Stop: 90}, b.Range)
}

func TestTransformGFF3AnnotationsFilterForID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.gff3")
	require.NoError(t, os.WriteFile(path, []byte(canonicalGFF3), 0o644))

	annos, err := TransformGFF3Annotations(path, "transcript2")
	require.NoError(t, err)
	require.Len(t, annos, 1)
	assert.Equal(t, "transcript2", annos[0].Name)
}

func TestTransformGFF3AnnotationsRejectsParentMismatch(t *testing.T) {
	bad := `chr1	test	transcript	10	90	.	+	.	ID=transcript1
chr1	test	exon	20	30	.	+	.	ID=ex1;Parent=somethingelse
`
	path := filepath.Join(t.TempDir(), "bad.gff3")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := TransformGFF3Annotations(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an ordered tree structure")
}
