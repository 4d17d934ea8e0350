package filetree

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/sticky"
)

// Node is one filesystem entry in the tree. The root node stands for the
// browsed directory itself and never appears as a row.
type Node struct {
	Name      string
	IsDir     bool
	IsSymlink bool
	Size      int64

	parent   *Node
	children []*Node
	loaded   bool
	expanded bool
}

// Path returns the node's identity, name segments from the browsed root.
func (n *Node) Path() sticky.Path {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.Name)
}

// Depth is the number of ancestors below the browsed root.
func (n *Node) Depth() int {
	d := 0
	for cur := n.parent; cur != nil && cur.parent != nil; cur = cur.parent {
		d++
	}
	return d
}

// Expanded reports whether the node currently shows its children.
func (n *Node) Expanded() bool { return n.expanded }

// child returns the loaded child with the given name.
func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// loadDir snapshots a directory into child nodes, directories first,
// case-insensitive within each group.
func loadDir(abs string, showHidden bool) []*Node {
	entries, err := os.ReadDir(abs)
	if err != nil {
		log.Warn(log.CatTree, "directory unreadable", "dir", abs, "error", err)
		return nil
	}

	var nodes []*Node
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		node := &Node{
			Name:      name,
			IsDir:     entry.IsDir(),
			IsSymlink: entry.Type()&fs.ModeSymlink != 0,
		}
		if info, err := entry.Info(); err == nil && !node.IsDir {
			node.Size = info.Size()
		}
		// A symlink pointing at a directory browses like one.
		if node.IsSymlink {
			if info, err := os.Stat(filepath.Join(abs, name)); err == nil && info.IsDir() {
				node.IsDir = true
			}
		}
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	return nodes
}
