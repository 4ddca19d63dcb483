package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, "html", e.Name())
	assert.Contains(t, e.Extensions(), ".html")
	assert.Contains(t, e.Extensions(), ".htm")
	assert.Contains(t, e.MIMETypes(), "text/html")
	assert.Contains(t, e.MIMETypes(), "application/xhtml+xml")
	assert.True(t, e.NeedsDeadline())
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "title then body",
			page: "<html><head><title>Test Page</title></head><body><p>Hello World</p></body></html>",
			want: "Test Page\nHello World",
		},
		{
			name: "scripts and styles dropped",
			page: "<p>Keep</p><script>var x = 1;</script><style>p { color: red }</style>",
			want: "Keep",
		},
		{
			name: "entities decoded",
			page: "<p>Fish &amp; Chips&nbsp;&lt;3</p>",
			want: "Fish & Chips <3",
		},
		{
			name: "line breaks",
			page: "Line one<br>Line two<br/>Line three",
			want: "Line one\nLine two\nLine three",
		},
		{
			name: "table cells on their own lines",
			page: "<table><tr><td>a</td><td>b</td></tr></table>",
			want: "a\nb",
		},
		{
			name: "comments dropped",
			page: "<p>a<!-- hidden --></p>",
			want: "a",
		},
		{
			name: "header element is not head",
			page: "<header>Top</header><p>Body</p>",
			want: "Top\nBody",
		},
		{
			name: "title only",
			page: "<title>Only</title>",
			want: "Only",
		},
		{
			name: "empty",
			page: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Extract(context.Background(), "page.html", "text/html", []byte(tt.page))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Q3 Plan & Goals", Title("<TITLE>  Q3 Plan &amp; Goals </TITLE>"))
	assert.Equal(t, "", Title("<p>no title</p>"))
}
