package geometry

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r2"
)

// pad keeps bounding rectangles of axis aligned segments from
// collapsing to zero width, which an R-tree cannot store
const pad float64 = 1e-6

// Index is a static spatial index over a set of polygons, used as a
// broad phase before exact intersection tests
type Index struct {
	tree     *rtreego.Rtree
	polygons []Polygon
}

type indexEntry struct {
	id     int
	bounds rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// NewIndex builds an Index over polygons. Polygon i is reported as id
// i by Search.
func NewIndex(polygons []Polygon) (*Index, error) {
	tree := rtreego.NewTree(2, 2, 8)

	stored := make([]Polygon, len(polygons))
	for i, p := range polygons {
		rect, err := toRect(p.Bounds())
		if err != nil {
			return nil, fmt.Errorf("newIndex: polygon %d: %v", i, err)
		}
		tree.Insert(&indexEntry{id: i, bounds: rect})
		stored[i] = p
	}

	return &Index{tree: tree, polygons: stored}, nil
}

// Len returns the number of polygons in the index
func (i *Index) Len() int {
	return len(i.polygons)
}

// Polygon returns the polygon with the given id
func (i *Index) Polygon(id int) Polygon {
	return i.polygons[id]
}

// Search returns, in increasing order, the ids of all polygons whose
// bounding boxes intersect box
func (i *Index) Search(box r2.Box) []int {
	rect, err := toRect(box)
	if err != nil {
		// Inverted boxes fail conversion; nothing lies in them
		return nil
	}

	results := i.tree.SearchIntersect(rect)
	ids := make([]int, len(results))
	for j, r := range results {
		ids[j] = r.(*indexEntry).id
	}
	sort.Ints(ids)
	return ids
}

func toRect(box r2.Box) (rtreego.Rect, error) {
	origin := rtreego.Point{box.Min.X - pad, box.Min.Y - pad}
	lengths := []float64{
		box.Max.X - box.Min.X + 2*pad,
		box.Max.Y - box.Min.Y + 2*pad,
	}
	return rtreego.NewRect(origin, lengths)
}
