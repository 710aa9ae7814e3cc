package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenkins-release/jenkins-release/params"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKeys []string
		want     map[string]string
	}{
		{
			name:     "simple pairs",
			args:     []string{"a=1", "b=2"},
			wantKeys: []string{"a", "b"},
			want:     map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "split on first equals only",
			args:     []string{"a=1=2"},
			wantKeys: []string{"a"},
			want:     map[string]string{"a": "1=2"},
		},
		{
			name:     "arguments without equals are dropped",
			args:     []string{"foo", "a=1", "bar"},
			wantKeys: []string{"a"},
			want:     map[string]string{"a": "1"},
		},
		{
			name:     "last duplicate wins and keeps first position",
			args:     []string{"a=1", "b=x", "a=2"},
			wantKeys: []string{"a", "b"},
			want:     map[string]string{"a": "2", "b": "x"},
		},
		{
			name:     "empty value and empty key",
			args:     []string{"a=", "=v"},
			wantKeys: []string{"a", ""},
			want:     map[string]string{"a": "", "": "v"},
		},
		{
			name:     "no arguments",
			args:     nil,
			wantKeys: nil,
			want:     map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Parse(tt.args)
			assert.Equal(t, tt.wantKeys, p.Keys())
			assert.Equal(t, tt.want, p.Map())
			assert.Equal(t, len(tt.want), p.Len())
		})
	}
}

func TestParseArgs(t *testing.T) {
	t.Run("missing job name", func(t *testing.T) {
		_, _, ok := params.ParseArgs(nil)
		assert.False(t, ok)
	})

	t.Run("job name and params", func(t *testing.T) {
		job, p, ok := params.ParseArgs([]string{"deploy", "a=1", "b=2"})
		require.True(t, ok)
		assert.Equal(t, "deploy", job)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, p.Map())
	})

	t.Run("job name only", func(t *testing.T) {
		job, p, ok := params.ParseArgs([]string{"deploy"})
		require.True(t, ok)
		assert.Equal(t, "deploy", job)
		assert.Equal(t, 0, p.Len())
	})
}

func TestQuery(t *testing.T) {
	p := params.Parse([]string{"env=prod", "msg=a b&c", "a=1=2"})
	assert.Equal(t, "env=prod&msg=a+b%26c&a=1%3D2", p.Query())

	v, ok := p.Get("msg")
	assert.True(t, ok)
	assert.Equal(t, "a b&c", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}
