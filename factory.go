package cubetower

// Factory binds payloads to visuals: it produces a node showing the payload
// under parent, and destroys nodes it produced.
type Factory interface {
	Instantiate(parent *Node, p Payload) *Node
	Destroy(n *Node)
}

// CubeFactory produces solid square cubes of a fixed size.
type CubeFactory struct {
	Size float64
}

// NewCubeFactory creates a factory for cubes of the given edge length.
func NewCubeFactory(size float64) *CubeFactory {
	return &CubeFactory{Size: size}
}

// Instantiate implements Factory. The node is appended last under parent so
// it draws above its siblings.
func (f *CubeFactory) Instantiate(parent *Node, p Payload) *Node {
	n := NewRect("cube", f.Size, f.Size, p.Color)
	if parent != nil {
		parent.AddChild(n)
	}
	return n
}

// Destroy implements Factory.
func (f *CubeFactory) Destroy(n *Node) {
	if n != nil {
		n.Dispose()
	}
}
