package xmlcodec

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_EventStream(t *testing.T) {
	r := NewReader(strings.NewReader(`<a x="1" y="2"><b/>text</a>`))

	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, StartElement, ev.Kind)
	require.Equal(t, "a", ev.Name)
	require.Equal(t, []Attr{{Name: "x", Value: "1"}, {Name: "y", Value: "2"}}, ev.Attrs)

	ev, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, StartElement, ev.Kind)
	require.Equal(t, "b", ev.Name)
	require.Empty(t, ev.Attrs)

	ev, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, EndElement, ev.Kind)
	require.Equal(t, "b", ev.Name)

	ev, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, Text, ev.Kind)
	require.Equal(t, "text", ev.Data)

	ev, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, EndElement, ev.Kind)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_SkipsProcInstAndComments(t *testing.T) {
	r := NewReader(strings.NewReader(`<?xml version="1.0"?><!-- hi --><root/>`))

	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, StartElement, ev.Kind)
	require.Equal(t, "root", ev.Name)
}

func TestReader_CollectText(t *testing.T) {
	r := NewReader(strings.NewReader(`<title>Mixed &amp; <ignored>inner</ignored>escaped</title>`))

	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "title", ev.Name)

	text, err := r.CollectText()
	require.NoError(t, err)
	require.Equal(t, "Mixed & escaped", text)
}

func TestReader_Skip(t *testing.T) {
	r := NewReader(strings.NewReader(`<root><junk><deep/></junk><keep/></root>`))

	_, err := r.Next() // root
	require.NoError(t, err)
	_, err = r.Next() // junk
	require.NoError(t, err)
	require.NoError(t, r.Skip())

	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, StartElement, ev.Kind)
	require.Equal(t, "keep", ev.Name)
}

func TestReader_MalformedInput(t *testing.T) {
	r := NewReader(strings.NewReader(`<a><b></a>`))

	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestReader_UnclosedTag(t *testing.T) {
	r := NewReader(strings.NewReader(`<a><b>`))

	var err error
	for err == nil {
		_, err = r.Next()
	}
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}
