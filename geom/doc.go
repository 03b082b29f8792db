// Package geom provides the planar shape model shared by the DXF parser
// and its consumers.
//
// Shapes are either paths (ordered command lists) or primitives
// (circle, ellipse, circular arc). All coordinates are plain float64
// pairs; angles on arc commands are degrees in the screen convention
//
//	point(a) = (cx + r*cos(a*pi/180), cy - r*sin(a*pi/180))
//
// so a negative extent sweeps clockwise on screen. This matches the
// convention the DXF parser emits: drawings are produced in a Y-up
// world frame and flipped once by the finalizer, after which the
// on-screen orientation is correct.
//
// Every shape and every path command implements the same bounds
// contract, and shapes carry themselves through affine transforms.
// Conformal transforms (rotation, uniform scale, reflection) keep
// circular arcs circular; anything else promotes them to elliptical
// arcs.
package geom
