// Package platform derives the reference points of a platform from its
// placement and footprint. Platforms are axis-aligned slabs: the top face is
// a rectangle in the x-z plane, y is up.
package platform
