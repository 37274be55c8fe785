package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jakoblorz/go-aptprofile/internal/partition"
)

// JSON writes the tree as indented JSON.
func JSON(w io.Writer, tree *partition.Tree) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
