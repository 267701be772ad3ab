package model

import "github.com/google/uuid"

// Bounds is the rectangle a hosted surface should fill, in the container's
// coordinate space.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ContainerHandle identifies a UI container borrowing the playback surface.
// Containers come and go with the view hierarchy; the handle outlives nothing,
// it is just identity plus the current layout bounds.
type ContainerHandle struct {
	ID     uuid.UUID
	Bounds Bounds
}

// NewContainerHandle allocates a handle for a freshly mounted container.
func NewContainerHandle(bounds Bounds) ContainerHandle {
	return ContainerHandle{ID: uuid.New(), Bounds: bounds}
}
