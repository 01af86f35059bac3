package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToleratesMalformedMarkup(t *testing.T) {
	doc, err := Parse(`<div class="a"><span>unclosed`)
	require.NoError(t, err)
	assert.Equal(t, "unclosed", Text(doc.Find("span")))

	doc, err = Parse("")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestFindClassMatchesExactToken(t *testing.T) {
	doc, err := Parse(`
		<div class="score">13</div>
		<div class="score-wrapper">99</div>
		<span class="score">7</span>`)
	require.NoError(t, err)

	sel := FindClass(doc.Selection, "score", "div")
	require.Equal(t, 1, sel.Length(), "substring and wrong-tag matches are excluded")
	assert.Equal(t, "13", Text(sel))

	sel = FindClass(doc.Selection, "score", "div", "span")
	assert.Equal(t, 2, sel.Length())
}

func TestFindClassContains(t *testing.T) {
	doc, err := Parse(`
		<div class="player-name">A</div>
		<span class="name-tag">B</span>
		<td class="rename">C</td>`)
	require.NoError(t, err)

	sel := FindClassContains(doc.Selection, "name", "div", "span")
	assert.Equal(t, 2, sel.Length())
}

func TestTextCollapsesWhitespace(t *testing.T) {
	doc, err := Parse("<div>  spaced \n\t out  </div>")
	require.NoError(t, err)
	assert.Equal(t, "spaced out", Text(doc.Find("div")))
}
