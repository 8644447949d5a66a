package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Lookup(t *testing.T) {
	table := Table{"sidebar.dashboard": "Dashboard"}

	tmpl, ok := table.Lookup("sidebar.dashboard")
	assert.True(t, ok)
	assert.Equal(t, "Dashboard", tmpl)

	_, ok = table.Lookup("sidebar.reports")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
	}{
		{
			name:     "no placeholders",
			template: "Welcome back",
			params:   map[string]string{"name": "Ada"},
			want:     "Welcome back",
		},
		{
			name:     "single substitution",
			template: "Hello {name}",
			params:   map[string]string{"name": "Ada"},
			want:     "Hello Ada",
		},
		{
			name:     "multiple tokens",
			template: "{greeting}, {name}!",
			params:   map[string]string{"greeting": "Merhaba", "name": "Ada"},
			want:     "Merhaba, Ada!",
		},
		{
			name:     "unmatched token left verbatim",
			template: "Hello {name}, you have {count} alerts",
			params:   map[string]string{"name": "Ada"},
			want:     "Hello Ada, you have {count} alerts",
		},
		{
			name:     "nil params leaves template untouched",
			template: "Hello {name}",
			params:   nil,
			want:     "Hello {name}",
		},
		{
			name:     "repeated token",
			template: "{name} and {name}",
			params:   map[string]string{"name": "Ada"},
			want:     "Ada and Ada",
		},
		{
			name:     "unterminated brace left verbatim",
			template: "Hello {name",
			params:   map[string]string{"name": "Ada"},
			want:     "Hello {name",
		},
		{
			name:     "empty value substitutes",
			template: "Hi {name}!",
			params:   map[string]string{"name": ""},
			want:     "Hi !",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.params))
		})
	}
}
