// Package params holds the build parameters forwarded to a Jenkins job.
package params

import (
	"net/url"
	"strings"
)

// Params is an ordered string mapping. Setting an existing key replaces its
// value and keeps the key at its first position.
type Params struct {
	keys   []string
	values map[string]string
}

// New returns an empty Params.
func New() *Params {
	return &Params{values: map[string]string{}}
}

func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p *Params) Len() int {
	return len(p.keys)
}

// Map returns a copy of the mapping without ordering.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Query encodes the parameters as a query string, in insertion order.
func (p *Params) Query() string {
	var sb strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.values[k]))
	}
	return sb.String()
}

// Parse builds Params from key=value arguments. Each argument is split on
// its first '='; arguments without one are ignored.
func Parse(args []string) *Params {
	p := New()
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		p.Set(k, v)
	}
	return p
}

// ParseArgs splits a positional argument vector into the job name and its
// parameters. ok is false when no job name was given.
func ParseArgs(args []string) (jobName string, p *Params, ok bool) {
	if len(args) == 0 {
		return "", New(), false
	}
	return args[0], Parse(args[1:]), true
}
