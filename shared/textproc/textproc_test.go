package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello world \n", "hello world"},
		{"strips tags", "<b>bold</b> move", "bold move"},
		{"drops scripts", "<script>alert(1)</script>", ""},
		{"keeps ampersands", "tom & jerry", "tom & jerry"},
		{"keeps heart", "i <3 go", "i <3 go"},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Normalize(tt.input))
		})
	}
}

func TestRender(t *testing.T) {
	p := New()

	assert.Equal(t, "<p><strong>hi</strong> there</p>", p.Render("**hi** there"))
	assert.Contains(t, p.Render("~~old~~"), "<del>old</del>")
	assert.NotContains(t, p.Render("<script>alert(1)</script>"), "<script")
	assert.Contains(t, p.Render("see https://example.com"), `href="https://example.com"`)
}
