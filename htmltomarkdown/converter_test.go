package htmltomarkdown_test

import (
	"testing"

	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert_headings_and_paragraphs(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	md, err := c.Convert(`<h1>Title</h1><p>Some <strong>bold</strong> text.</p>`)

	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
}

func TestConverter_Convert_code_blocks(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	md, err := c.Convert(`<pre><code>fmt.Println("hi")</code></pre>`)

	require.NoError(t, err)
	assert.Contains(t, md, "fmt.Println(\"hi\")")
}

func TestConverter_Convert_links(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	md, err := c.Convert(`<a href="https://example.com/docs">the docs</a>`)

	require.NoError(t, err)
	assert.Contains(t, md, "[the docs](https://example.com/docs)")
}

func TestConverter_Convert_tables(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	md, err := c.Convert(`<table><tr><th>Name</th></tr><tr><td>value</td></tr></table>`)

	require.NoError(t, err)
	assert.Contains(t, md, "| Name |")
	assert.Contains(t, md, "| value |")
}

func TestConverter_Convert_empty_input(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	_, err := c.Convert("   ")

	assert.Error(t, err)
	assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
}
