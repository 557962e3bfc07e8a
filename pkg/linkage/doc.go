// Package linkage defines the planar linkage model for linkfab.
//
// A Configuration is a set of Hubs (pivot points) connected by Links
// (rigid bodies). Every link can be viewed in three coordinate spaces:
// assembled (as authored), primitive (canonical per-link pose) and
// fabrication (primitive pose translated onto the cutting sheet). The
// Shaper derives link shapes and the transforms between these spaces.
package linkage
