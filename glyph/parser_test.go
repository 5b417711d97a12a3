package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeforge/ufo/ufocore"
)

// round-trip an empty glyph.
func TestParseEmptyGlyph(t *testing.T) {
	g, err := Parse([]byte(`<glyph name="a" format="2"><outline/></glyph>`), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "a", g.Name)
	assert.NotNil(t, g.Outline)
	assert.Empty(t, g.Outline.Contours)
	assert.Empty(t, g.Outline.Components)

	out, err := Serialize(g)
	require.NoError(t, err)
	g2, err := Parse(out, nil, "")
	require.NoError(t, err)
	assert.Equal(t, g.Name, g2.Name)
	assert.Equal(t, g.Outline, g2.Outline)
}

// Scenario B: three consecutive off-curves then a curve is too many.
func TestParseTooManyOffCurves(t *testing.T) {
	src := `<glyph name="b" format="2"><outline><contour>
		<point x="0" y="0" type="move"/>
		<point x="1" y="1" type="offcurve"/>
		<point x="2" y="2" type="offcurve"/>
		<point x="3" y="3" type="offcurve"/>
		<point x="4" y="4" type="curve"/>
	</contour></outline></glyph>`
	_, err := Parse([]byte(src), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonTooManyOffCurves))
}

// Scenario C: an open contour ending in an off-curve never terminates.
func TestParseTrailingOffCurves(t *testing.T) {
	src := `<glyph name="c" format="2"><outline><contour>
		<point x="0" y="0" type="move"/>
		<point x="1" y="1" type="offcurve"/>
	</contour></outline></glyph>`
	_, err := Parse([]byte(src), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonTrailingOffCurves))
}

// Scenario D: public.objectLibs redistribution onto a contour.
func TestParseObjectLibsRedistribution(t *testing.T) {
	src := `<glyph name="d" format="2">
		<outline>
			<contour identifier="id-1">
				<point x="0" y="0" type="move"/>
				<point x="1" y="1" type="line"/>
			</contour>
		</outline>
		<lib>
			<dict>
				<key>public.objectLibs</key>
				<dict>
					<key>id-1</key>
					<dict>
						<key>note</key>
						<string>hi</string>
					</dict>
				</dict>
			</dict>
		</lib>
	</glyph>`
	g, err := Parse([]byte(src), nil, "")
	require.NoError(t, err)
	require.Len(t, g.Outline.Contours, 1)
	assert.Equal(t, "hi", g.Outline.Contours[0].Lib["note"])
	_, hasKey := g.Lib[ObjectLibsKey]
	assert.False(t, hasKey, "public.objectLibs must not survive in glyph.Lib after load")
}

// a V1 glyph encodes an anchor as a named, pathless Move point; Parse
// must lift it into g.Anchors and leave the (real) contour alone.
func TestParseV1AnchorLiftedOut(t *testing.T) {
	src := `<glyph name="g" format="1">
		<outline>
			<contour>
				<point x="10" y="20" type="move" name="top"/>
			</contour>
			<contour>
				<point x="0" y="0" type="move"/>
				<point x="1" y="1" type="line"/>
			</contour>
		</outline>
	</glyph>`
	g, err := Parse([]byte(src), nil, "")
	require.NoError(t, err)
	assert.Equal(t, V1, g.Format)
	require.Len(t, g.Anchors, 1)
	assert.Equal(t, "top", g.Anchors[0].Name)
	assert.Equal(t, 10.0, g.Anchors[0].X)
	assert.Equal(t, 20.0, g.Anchors[0].Y)
	require.Len(t, g.Outline.Contours, 1)
	assert.Len(t, g.Outline.Contours[0].Points, 2)
}

// an unnamed pathless Move point is V1's encoding of a genuine one-point
// open contour, not an anchor, and must survive in Outline.Contours.
func TestParseV1UnnamedMovePointNotAnAnchor(t *testing.T) {
	src := `<glyph name="h" format="1">
		<outline>
			<contour>
				<point x="5" y="5" type="move"/>
			</contour>
		</outline>
	</glyph>`
	g, err := Parse([]byte(src), nil, "")
	require.NoError(t, err)
	assert.Empty(t, g.Anchors)
	require.Len(t, g.Outline.Contours, 1)
}

func TestParseWrongFirstElement(t *testing.T) {
	_, err := Parse([]byte(`<notglyph/>`), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonWrongFirstElement))
}

func TestParseUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte(`<glyph name="x" format="7"/>`), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonUnsupportedGlifVersion))
}

func TestParseDuplicateIdentifier(t *testing.T) {
	src := `<glyph name="e" format="2">
		<anchor x="0" y="0" name="top" identifier="dup"/>
		<guideline x="0" identifier="dup"/>
	</glyph>`
	_, err := Parse([]byte(src), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonDuplicateIdentifier))
}

func TestParseSmoothOnOffCurveRejected(t *testing.T) {
	src := `<glyph name="f" format="2"><outline><contour>
		<point x="0" y="0" type="move"/>
		<point x="1" y="1" type="offcurve" smooth="yes"/>
		<point x="2" y="2" type="curve"/>
	</contour></outline></glyph>`
	_, err := Parse([]byte(src), nil, "")
	require.Error(t, err)
	assert.True(t, reasonIs(err, ReasonUnexpectedSmooth))
}

func reasonIs(err error, reason string) bool {
	return ufocore.HasReason(err, reason)
}
