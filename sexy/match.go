package sexy

import (
	"fmt"
	"strconv"
)

// Match reports the first place where actual differs from pattern, or nil.
// A bare `...` pattern matches any datum; inside a list or array it matches
// any run of items, including none.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(p, a *Node, path string) error {
	if p.Type == NodeEllipsis {
		return nil
	}
	if a == nil {
		return fmt.Errorf("at %s: expected %s, got nothing", path, p)
	}
	if p.Type != a.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, p.Type, p, a.Type, a)
	}

	switch p.Type {
	case NodeList, NodeArray:
		if head := a.Head(); head != "" {
			path += "/" + head
		}
		return matchSeq(p.Items, a.Items, 0, path)
	case NodeFloat:
		pf, perr := strconv.ParseFloat(p.Text, 64)
		af, aerr := strconv.ParseFloat(a.Text, 64)
		if perr != nil || aerr != nil || pf != af {
			return fmt.Errorf("at %s: expected float %s, got %s", path, p.Text, a.Text)
		}
		return nil
	default:
		if p.Text != a.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, p, a)
		}
		return nil
	}
}

// matchSeq matches item lists, backtracking over ellipses.
func matchSeq(ps, as []*Node, offset int, path string) error {
	if len(ps) == 0 {
		if len(as) > 0 {
			return fmt.Errorf("at %s: unexpected item %s at index %d", path, as[0], offset)
		}
		return nil
	}

	if ps[0].Type == NodeEllipsis {
		var first error
		for skip := 0; skip <= len(as); skip++ {
			err := matchSeq(ps[1:], as[skip:], offset+skip, path)
			if err == nil {
				return nil
			}
			if first == nil {
				first = err
			}
		}
		return first
	}

	if len(as) == 0 {
		return fmt.Errorf("at %s: missing item %s at index %d", path, ps[0], offset)
	}
	if err := match(ps[0], as[0], fmt.Sprintf("%s[%d]", path, offset)); err != nil {
		return err
	}
	return matchSeq(ps[1:], as[1:], offset+1, path)
}
