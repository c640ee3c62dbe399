package layout

import (
	"reflect"
	"testing"
)

func constEstimate(h int) func(int) int {
	return func(int) int { return h }
}

func TestDistribute_EmptyInputReturnsOneEmptyPage(t *testing.T) {
	pages := Distribute(nil, 960, constEstimate(100))
	if len(pages) != 1 {
		t.Fatalf("expected exactly 1 page, got %d", len(pages))
	}
	if len(pages[0]) != 0 {
		t.Fatalf("expected the single page to be empty, got %d items", len(pages[0]))
	}
}

func TestDistribute_AllItemsFitOnOnePage(t *testing.T) {
	// 5 entries at 100px each plus one 60px section header on the
	// first entry: 560px total against a 960px budget.
	items := []int{0, 1, 2, 3, 4}
	estimate := func(i int) int {
		if i == 0 {
			return 160
		}
		return 100
	}

	pages := Distribute(items, 960, estimate)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if !reflect.DeepEqual(pages[0], items) {
		t.Fatalf("expected all items on page 1, got %v", pages[0])
	}
}

func TestDistribute_SplitsWhereBudgetFirstExceeded(t *testing.T) {
	// 10 entries: header+entry 1 is 160px, the rest 100px. Entries
	// 1-9 sum to exactly 960 and fit; entry 10 opens page 2.
	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}
	estimate := func(i int) int {
		if i == 0 {
			return 160
		}
		return 100
	}

	pages := Distribute(items, 960, estimate)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[0]) != 9 {
		t.Fatalf("expected 9 items on page 1, got %d", len(pages[0]))
	}
	if len(pages[1]) != 1 || pages[1][0] != 9 {
		t.Fatalf("expected only the last item on page 2, got %v", pages[1])
	}
}

func TestDistribute_OversizedItemGetsOwnPageUnsplit(t *testing.T) {
	items := []int{1, 2, 3}
	estimate := func(i int) int {
		if i == 2 {
			return 5000 // alone exceeds the budget; still never split
		}
		return 100
	}

	pages := Distribute(items, 960, estimate)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if len(pages[1]) != 1 || pages[1][0] != 2 {
		t.Fatalf("expected the oversized item alone on page 2, got %v", pages[1])
	}
	if len(pages[2]) != 1 || pages[2][0] != 3 {
		t.Fatalf("expected the trailing item alone on page 3, got %v", pages[2])
	}
}

func TestDistribute_ZeroHeightItemsAreLegal(t *testing.T) {
	items := []int{1, 2, 3, 4}
	pages := Distribute(items, 100, constEstimate(0))
	if len(pages) != 1 {
		t.Fatalf("expected 1 page for zero-cost items, got %d", len(pages))
	}
	if !reflect.DeepEqual(pages[0], items) {
		t.Fatalf("expected all items on one page, got %v", pages[0])
	}
}

func TestDistribute_OrderPreservedNoDropsNoDuplicates(t *testing.T) {
	items := make([]int, 37)
	for i := range items {
		items[i] = i
	}
	estimate := func(i int) int { return 50 + (i*37)%180 }

	pages := Distribute(items, 400, estimate)

	var flat []int
	for _, page := range pages {
		flat = append(flat, page...)
	}
	if !reflect.DeepEqual(flat, items) {
		t.Fatalf("concatenated pages diverge from input order:\n got %v\nwant %v", flat, items)
	}
}

func TestDistribute_MonotonicPacking(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}
	estimate := func(i int) int { return 90 + (i*53)%300 }
	const maxHeight = 500

	pages := Distribute(items, maxHeight, estimate)
	for idx, page := range pages[:len(pages)-1] {
		sum := 0
		for _, item := range page {
			sum += estimate(item)
		}
		if sum > maxHeight && len(page) != 1 {
			t.Fatalf("page %d overpacked: %d items sum to %d > %d", idx, len(page), sum, maxHeight)
		}
	}
}

func TestDistribute_Deterministic(t *testing.T) {
	items := make([]int, 40)
	for i := range items {
		items[i] = i
	}
	estimate := func(i int) int { return 60 + (i*29)%250 }

	first := Distribute(items, 700, estimate)
	second := Distribute(items, 700, estimate)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("distribution is not deterministic:\n first %v\nsecond %v", first, second)
	}
}
