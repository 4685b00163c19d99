package pagination

import "querydeck/internal/domain"

// DefaultRadius is how many pages either side of the current one are listed
const DefaultRadius = 2

// Window lists the page numbers a pagination control shows: the first and
// last page, every page within radius of current, and a gap marker wherever
// pages are skipped. A gap that would stand in for a single page is replaced
// by that page. Fewer than two pages yield an empty window.
func Window(current, total, radius int) []domain.PageToken {
	if total <= 1 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	pages := []int{1}
	for p := max(2, current-radius); p <= min(total-1, current+radius); p++ {
		pages = append(pages, p)
	}
	pages = append(pages, total)

	tokens := make([]domain.PageToken, 0, len(pages)+2)
	for i, p := range pages {
		if i > 0 {
			switch prev := pages[i-1]; p - prev {
			case 1:
			case 2:
				tokens = append(tokens, domain.PageNumber(prev+1))
			default:
				tokens = append(tokens, domain.Gap)
			}
		}
		tokens = append(tokens, domain.PageNumber(p))
	}
	return tokens
}

// Clamp limits n to the pages that exist. With no known pages it returns 1.
func Clamp(n, total int) int {
	if total < 1 {
		return 1
	}
	return min(max(n, 1), total)
}

// HasPrev reports whether there is a page before current
func HasPrev(current int) bool {
	return current > 1
}

// HasNext reports whether there is a page after current
func HasNext(current, total int) bool {
	return current < total
}
