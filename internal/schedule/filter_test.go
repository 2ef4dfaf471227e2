package schedule

import (
	"reflect"
	"testing"

	"labplan-cli/internal/model"
)

func TestFilter_EmptyIsReferencePassThrough(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-01"), Category: model.CategoryWriting},
	})
	out := NewFilter().Apply(idx)

	// Fast path must return the same map, not an equal copy.
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(idx).Pointer() {
		t.Fatalf("empty filter should return the input index unchanged")
	}
}

func TestFilter_CategoryMismatchDropsDateEntirely(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-01"), Category: model.CategoryWriting},
	})
	f := NewFilter()
	f.ToggleCategory(model.CategoryExperiment)

	out := f.Apply(idx)
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
	if _, ok := out["2025-06-01"]; ok {
		t.Fatalf("emptied date must be dropped, not kept as an empty bucket")
	}
}

func TestFilter_CategoryAndAssigneeCombineAsAND(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "match", Due: due("2025-06-01"), Category: model.CategoryWriting, AssignedTo: "ida"},
		{ID: "wrong-cat", Due: due("2025-06-01"), Category: model.CategoryAdmin, AssignedTo: "ida"},
		{ID: "wrong-who", Due: due("2025-06-01"), Category: model.CategoryWriting, AssignedTo: "sam"},
	})
	f := NewFilter()
	f.ToggleCategory(model.CategoryWriting)
	f.ToggleAssignee("ida")

	out := f.Apply(idx)
	bucket := out["2025-06-01"]
	if len(bucket) != 1 || bucket[0].ID != "match" {
		t.Fatalf("expected only [match], got %v", bucket)
	}
}

func TestFilter_EmptyAssigneeSetMatchesEverything(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-01"), Category: model.CategoryWriting, AssignedTo: "ida"},
		{ID: "b", Due: due("2025-06-01"), Category: model.CategoryWriting},
	})
	f := NewFilter()
	f.ToggleCategory(model.CategoryWriting)

	out := f.Apply(idx)
	if len(out["2025-06-01"]) != 2 {
		t.Fatalf("empty assignee set must not exclude anyone, got %v", out["2025-06-01"])
	}
}

func TestFilter_Idempotent(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-01"), Category: model.CategoryWriting, AssignedTo: "ida"},
		{ID: "b", Due: due("2025-06-02"), Category: model.CategoryAdmin},
	})
	f := NewFilter()
	f.ToggleCategory(model.CategoryWriting)

	once := f.Apply(idx)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("applying the same filter twice changed the output:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestFilter_SelectingAllCategoriesThenClearingEqualsUnfiltered(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-01"), Category: model.CategoryWriting},
		{ID: "b", Due: due("2025-06-02"), Category: model.CategoryAdmin},
	})

	f := NewFilter()
	for _, c := range model.Categories {
		f.ToggleCategory(c)
	}
	all := f.Apply(idx)
	if !reflect.DeepEqual(map[string][]model.Task(all), map[string][]model.Task(idx)) {
		t.Fatalf("all categories selected should be deep-equal to unfiltered index")
	}

	for _, c := range model.Categories {
		f.ToggleCategory(c)
	}
	if !f.Empty() {
		t.Fatalf("toggling everything off should leave an empty filter")
	}
}

func TestFilter_ToggleAssigneeRoundTrip(t *testing.T) {
	f := NewFilter()
	f.ToggleAssignee("ida")
	if !f.Assignees["ida"] {
		t.Fatalf("expected ida selected")
	}
	f.ToggleAssignee("ida")
	if len(f.Assignees) != 0 {
		t.Fatalf("expected assignee filter cleared")
	}
}

func TestFilter_DefaultCategoryFallsBackToOther(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "uncat", Due: due("2025-06-01")},
	})
	f := NewFilter()
	f.ToggleCategory(model.CategoryOther)

	out := f.Apply(idx)
	if len(out["2025-06-01"]) != 1 {
		t.Fatalf("uncategorized task should match the 'other' filter")
	}
}
