package partition

// ValidateName checks that name can be used for a profile. The comparison
// is exact and case-sensitive. exclude is the profile being renamed, whose
// own current name does not count as a collision; pass nil on create.
func (s *Store) ValidateName(name string, exclude *Profile) error {
	if name == "" {
		return ErrInvalidName
	}

	if exclude != s.def && s.def.Name == name {
		return ErrDuplicateName
	}

	for _, p := range s.profiles {
		if p == exclude {
			continue
		}
		if p.Name == name {
			return ErrDuplicateName
		}
	}

	return nil
}
