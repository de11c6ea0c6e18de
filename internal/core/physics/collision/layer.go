package collision

// LayerMap maps a layer to the mask of layers it collides with.
type LayerMap map[uint32]uint32

// CanCollide reports whether two layers interact. A nil map lets everything
// collide; otherwise either side may opt in to the other.
func CanCollide(layerA, layerB uint32, m LayerMap) bool {
	if m == nil {
		return true
	}
	return (m[layerA]&layerB)|(m[layerB]&layerA) != 0
}

// CanCollide reports whether s and other interact under m.
func (s *Shape) CanCollide(other *Shape, m LayerMap) bool {
	return CanCollide(s.layer, other.layer, m)
}
