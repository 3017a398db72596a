// Package layout places ROS nodes into grouped rectangles.
//
// Settings declare an ordered list of [Group] values. Every node joins the
// first group whose name occurs in its quoted key, or the reserved
// [Others] group when none match. Each group's induced subgraph is laid out
// on its own by an [Engine] (normally [Graphviz] running "dot"), normalized
// into the unit square, and projected into the group's offset rectangle:
//
//	horizontal: (x, y) -> (ox + (1-y)*w, oy + x*h)
//	vertical:   (x, y) -> (ox + x*w,     oy + (1-y)*h)
//
// [Align] then centers the whole drawing on the origin.
package layout
