package recipe

import "testing"

func TestChecksumList_PriorityOrder(t *testing.T) {
	p := &ParsedRecipe{
		Checksums: map[string][]string{
			"md5":    {"legacy"},
			"sha256": {"preferred"},
		},
	}
	algo, values := p.ChecksumList()
	if algo != "sha256" {
		t.Errorf("ChecksumList() algo = %q, want sha256", algo)
	}
	if len(values) != 1 || values[0] != "preferred" {
		t.Errorf("ChecksumList() values = %v, want [preferred]", values)
	}
}

func TestChecksumList_Empty(t *testing.T) {
	p := &ParsedRecipe{Checksums: map[string][]string{}}
	algo, values := p.ChecksumList()
	if algo != "" || values != nil {
		t.Errorf("ChecksumList() = (%q, %v), want (\"\", nil)", algo, values)
	}
}
