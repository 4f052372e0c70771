package sim

import (
	"fmt"
	"slices"
)

// Network is the static warehouse graph: a symmetric adjacency matrix over ids 0..Size()-1.
type Network struct {
	adj [][]bool
}

// Link is an undirected connection between two warehouses, with A < B.
type Link struct {
	A, B int
}

// NewNetwork validates and copies an adjacency matrix.
func NewNetwork(adj [][]bool) (*Network, error) {
	n := len(adj)
	copied := make([][]bool, n)
	for i, row := range adj {
		if len(row) != n {
			return nil, fmt.Errorf("adjacency row %d has %d columns, want %d: %w", i, len(row), n, ErrInvalidInput)
		}
		copied[i] = slices.Clone(row)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if copied[i][j] != copied[j][i] {
				return nil, fmt.Errorf("adjacency matrix not symmetric at (%d,%d): %w", i, j, ErrInvalidInput)
			}
		}
	}
	return &Network{adj: copied}, nil
}

// Size is the number of warehouses.
func (nw *Network) Size() int {
	return len(nw.adj)
}

// Valid reports whether id names a warehouse.
func (nw *Network) Valid(id int) bool {
	return id >= 0 && id < len(nw.adj)
}

// Adjacent reports whether a and b are directly linked.
func (nw *Network) Adjacent(a, b int) bool {
	return nw.Valid(a) && nw.Valid(b) && nw.adj[a][b]
}

// Links returns every undirected link in row-major order (A < B, self-loops ignored).
func (nw *Network) Links() []Link {
	var links []Link
	for i := range nw.adj {
		for j := i + 1; j < len(nw.adj); j++ {
			if nw.adj[i][j] {
				links = append(links, Link{A: i, B: j})
			}
		}
	}
	return links
}

// Route returns the fewest-hops path from origin to destination, both inclusive.
// Neighbours are expanded in ascending id order, so among equal-length paths
// the one through lower ids wins.
func (nw *Network) Route(origin, destination int) ([]int, error) {
	if !nw.Valid(origin) {
		return nil, fmt.Errorf("route origin %d: %w", origin, ErrInvalidWarehouse)
	}
	if !nw.Valid(destination) {
		return nil, fmt.Errorf("route destination %d: %w", destination, ErrInvalidWarehouse)
	}

	n := len(nw.adj)
	predecessor := make([]int, n)
	for i := range predecessor {
		predecessor[i] = -1
	}
	visited := make([]bool, n)

	queue := []int{origin}
	visited[origin] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == destination {
			break
		}
		for v := 0; v < n; v++ {
			if nw.adj[u][v] && !visited[v] {
				visited[v] = true
				predecessor[v] = u
				queue = append(queue, v)
			}
		}
	}

	var path []int
	for at := destination; at != -1; at = predecessor[at] {
		path = append(path, at)
	}
	slices.Reverse(path)

	if path[0] != origin {
		return nil, fmt.Errorf("no route from %d to %d: %w", origin, destination, ErrUnreachable)
	}
	return path, nil
}
