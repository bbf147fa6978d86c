package check

import "github.com/ppiankov/copycop/internal/model"

// GroupSections partitions the level-3 headings into sections. An H3
// directly after another H3 joins its group; any other H3 opens a group
// keyed by its own position. Sections come back in document order.
func GroupSections(headings []*model.Heading) [][]*model.Heading {
	var sections [][]*model.Heading
	index := make(map[int]int)

	for i, h := range headings {
		if h.Depth != 3 {
			continue
		}

		if i > 0 && headings[i-1].Depth == 3 {
			h.Group = headings[i-1].Group
		} else {
			h.Group = i
			index[i] = len(sections)
			sections = append(sections, nil)
		}

		at := index[h.Group]
		sections[at] = append(sections[at], h)
	}

	return sections
}
