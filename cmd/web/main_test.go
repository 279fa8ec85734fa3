package main

import (
	"strings"
	"testing"

	"github.com/tomz197/lakeside/internal/catalog"
)

func TestRenderIndex(t *testing.T) {
	tables := catalog.Default()
	page, err := renderIndex(newPageData(tables, "lake.example.com", "2222"))
	if err != nil {
		t.Fatalf("renderIndex() error: %v", err)
	}
	html := string(page)

	if !strings.Contains(html, "ssh -t -p 2222 lake.example.com") {
		t.Error("page is missing the ssh command")
	}
	for _, s := range tables.Species() {
		if !strings.Contains(html, s.Name) {
			t.Errorf("page is missing species %q", s.Name)
		}
	}
	if got := strings.Count(html, "<td>protected, let it go</td>"); got == 0 {
		t.Error("page does not mark protected species")
	}
}

func TestRenderIndexEscapesHost(t *testing.T) {
	page, err := renderIndex(newPageData(catalog.Default(), "<script>", "22"))
	if err != nil {
		t.Fatalf("renderIndex() error: %v", err)
	}
	if strings.Contains(string(page), "<script>") {
		t.Error("host was not escaped")
	}
}
