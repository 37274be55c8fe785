package partition

import "fmt"

// MoveResult reports which identifiers a move relocated and which it
// skipped because they no longer resided in the source profile.
type MoveResult struct {
	Moved   []string
	Skipped []string
}

// MoveMembers relocates modules from one profile to another. Either side
// may be the default profile; from == to is a no-op.
//
// An identifier moves only if it currently resides in from: the computed
// membership for the default profile, the stored members for an explicit
// one. Anything else is skipped and the rest of the batch still applies.
// Unknown profiles fail the whole call before anything changes.
func (s *Store) MoveMembers(modules []string, from, to *Profile) (MoveResult, error) {
	if !s.owns(from) {
		return MoveResult{}, fmt.Errorf("failed to move modules: source %w", ErrUnknownProfile)
	}
	if !s.owns(to) {
		return MoveResult{}, fmt.Errorf("failed to move modules: target %w", ErrUnknownProfile)
	}
	if from == to {
		return MoveResult{}, nil
	}

	resident := s.residentSet(from)

	var result MoveResult
	seen := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}

		if _, ok := resident[m]; ok {
			result.Moved = append(result.Moved, m)
		} else {
			result.Skipped = append(result.Skipped, m)
		}
	}

	for _, m := range result.Moved {
		if !from.isDefault {
			delete(from.members, m)
		}
		if !to.isDefault {
			to.members[m] = struct{}{}
		}
	}

	if len(result.Skipped) > 0 {
		s.logger.Debug("skipped stale modules", "from", from.Name, "modules", result.Skipped)
	}

	if len(result.Moved) > 0 {
		s.logger.Debug("moved modules", "from", from.Name, "to", to.Name, "count", len(result.Moved))
		s.rebuild()
	}

	return result, nil
}

// Assign moves every module to profile to from whichever profile owns it
// now.
func (s *Store) Assign(modules []string, to *Profile) (MoveResult, error) {
	if !s.owns(to) {
		return MoveResult{}, fmt.Errorf("failed to assign modules: %w", ErrUnknownProfile)
	}

	order := []*Profile{}
	groups := make(map[*Profile][]string)
	for _, m := range modules {
		owner := s.ProfileFor(m)
		if _, ok := groups[owner]; !ok {
			order = append(order, owner)
		}
		groups[owner] = append(groups[owner], m)
	}

	var total MoveResult
	for _, owner := range order {
		if owner == to {
			continue
		}
		res, err := s.MoveMembers(groups[owner], owner, to)
		if err != nil {
			return total, err
		}
		total.Moved = append(total.Moved, res.Moved...)
		total.Skipped = append(total.Skipped, res.Skipped...)
	}

	return total, nil
}

func (s *Store) residentSet(p *Profile) map[string]struct{} {
	if !p.isDefault {
		return p.members
	}

	out := make(map[string]struct{})
	for _, m := range s.ComputedMembers(p) {
		out[m] = struct{}{}
	}
	return out
}
