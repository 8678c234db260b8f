package entity

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
)

func TestBuilderTextConcatenation(t *testing.T) {
	b := NewBuilder(nil)
	b.OnStart("a", nil)
	b.OnText("one ")
	b.OnText("two ")
	b.OnText("three")
	if err := b.OnEnd("a"); err != nil {
		t.Fatalf("OnEnd: %v", err)
	}

	if !b.Done() {
		t.Error("Done = false after root closed")
	}
	if got := b.Root().Text; got != "one two three" {
		t.Errorf("Text = %q, want concatenation of all runs", got)
	}
}

func TestBuilderInterleavedText(t *testing.T) {
	root, err := Parse(strings.NewReader("<a>pre<b>hi</b>mid<c>there</c>post</a>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Text != "premidpost" {
		t.Errorf("parent text = %q, want %q", root.Text, "premidpost")
	}
	if got := root.Child("b").Text; got != "hi" {
		t.Errorf("child b text = %q", got)
	}
}

func TestBuilderEndTagMismatch(t *testing.T) {
	b := NewBuilder(nil)
	b.OnStart("a", nil)
	b.OnStart("b", nil)

	err := b.OnEnd("c")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("OnEnd mismatch: got %v, want ParseError", err)
	}
}

func TestBuilderAttributesAttachedOnStart(t *testing.T) {
	b := NewBuilder(nil)
	b.OnStart("task", []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: "t1"},
		{Name: xml.Name{Local: "status"}, Value: "200"},
	})

	if v, ok := b.Root().Attribute("id"); !ok || v != "t1" {
		t.Errorf("id attribute = (%q, %v)", v, ok)
	}
	if v, _ := b.Root().Attribute("status"); v != "200" {
		t.Errorf("status attribute = %q", v)
	}
}

func TestParseStopsAtRootClose(t *testing.T) {
	// Trailing bytes after the root element belong to the next document.
	root, err := Parse(strings.NewReader("<a><b/></a><next/>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name != "a" || len(root.Children) != 1 {
		t.Errorf("unexpected tree: %s", root)
	}
}

func TestParseTruncatedInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("<a><b>")); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("truncated input: got %v, want ErrEndOfStream", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("<a><b></c></a>"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("mismatched close: got %v, want ParseError", err)
	}
}
