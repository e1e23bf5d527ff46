package taxonomy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unieval-ai/unieval/api"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		spec       []api.Tag
		wantErr    bool
		wantReason string
	}{
		{
			name: "valid two level spec",
			spec: []api.Tag{
				{Level1: "G", Level2: "G1"},
				{Level1: "G", Level2: "G2"},
				{Level1: "H", Level2: "H1"},
			},
		},
		{
			name: "missing level1 parent",
			spec: []api.Tag{
				{Level1: "", Level2: "G1"},
			},
			wantErr:    true,
			wantReason: "level-2 tag has no level-1 parent",
		},
		{
			name: "empty level2 id",
			spec: []api.Tag{
				{Level1: "G", Level2: ""},
			},
			wantErr:    true,
			wantReason: "empty level-2 id",
		},
		{
			name: "duplicate level2 id",
			spec: []api.Tag{
				{Level1: "G", Level2: "G1"},
				{Level1: "H", Level2: "G1"},
			},
			wantErr:    true,
			wantReason: "duplicate level-2 id",
		},
		{
			name: "id reused across levels",
			spec: []api.Tag{
				{Level1: "G", Level2: "G1"},
				{Level1: "G1", Level2: "X1"},
			},
			wantErr:    true,
			wantReason: "id used at both levels",
		},
		{
			name: "id at both levels in one record",
			spec: []api.Tag{
				{Level1: "X", Level2: "X"},
			},
			wantErr:    true,
			wantReason: "id used at both levels",
		},
		{
			name: "level2 id shadows later level1 id",
			spec: []api.Tag{
				{Level1: "G", Level2: "H"},
				{Level1: "H", Level2: "H1"},
			},
			wantErr:    true,
			wantReason: "id used at both levels",
		},
		{
			name: "empty spec is valid",
			spec: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := Load(tt.spec)
			if tt.wantErr {
				var mt *api.MalformedTaxonomyError
				if !errors.As(err, &mt) {
					t.Fatalf("Load() error = %v, want MalformedTaxonomyError", err)
				}
				if mt.Reason != tt.wantReason {
					t.Errorf("Load() reason = %q, want %q", mt.Reason, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tax == nil {
				t.Fatal("Load() returned nil taxonomy")
			}
		})
	}
}

func TestTaxonomyLookups(t *testing.T) {
	tax, err := Load([]api.Tag{
		{Level1: "G", Level2: "G2", Description: "style"},
		{Level1: "G", Level2: "G1", Description: "layout"},
		{Level1: "H", Level2: "H1", Description: "counting"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if p, ok := tax.ParentOf("G2"); !ok || p != "G" {
		t.Errorf("ParentOf(G2) = %q, %v; want G, true", p, ok)
	}
	if _, ok := tax.ParentOf("missing"); ok {
		t.Error("ParentOf(missing) = true, want false")
	}

	if diff := cmp.Diff([]string{"G1", "G2"}, tax.Level2Under("G")); diff != "" {
		t.Errorf("Level2Under(G) mismatch (-want +got):\n%s", diff)
	}
	if got := tax.Level2Under("missing"); len(got) != 0 {
		t.Errorf("Level2Under(missing) = %v, want empty", got)
	}

	if diff := cmp.Diff([]string{"G", "H"}, tax.Level1IDs()); diff != "" {
		t.Errorf("Level1IDs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"G1", "G2", "H1"}, tax.Level2IDs()); diff != "" {
		t.Errorf("Level2IDs() mismatch (-want +got):\n%s", diff)
	}

	if !tax.HasLevel2("H1") || tax.HasLevel2("H2") {
		t.Error("HasLevel2 lookup wrong")
	}

	tag, ok := tax.Tag("G1")
	if !ok || tag.Description != "layout" {
		t.Errorf("Tag(G1) = %+v, %v", tag, ok)
	}
}

func TestTaxonomyAccessorsCopy(t *testing.T) {
	tax, err := Load([]api.Tag{{Level1: "G", Level2: "G1"}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Mutating returned slices must not affect the taxonomy.
	ids := tax.Level2Under("G")
	ids[0] = "mutated"
	if got := tax.Level2Under("G")[0]; got != "G1" {
		t.Errorf("Level2Under leaked internal slice, got %q", got)
	}

	tags := tax.Tags()
	tags[0].Level2 = "mutated"
	if got := tax.Tags()[0].Level2; got != "G1" {
		t.Errorf("Tags leaked internal slice, got %q", got)
	}
}
