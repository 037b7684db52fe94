// Package paging translates the wire pagination arguments (a zero-based
// row offset "from" and a page size) into the row offset actually used.
//
// Pagination is page-based: from is rounded down to a page boundary
// (page = from/size when from > 0, else page 0). A from that is not a
// multiple of size therefore lands on the start of its page. Inherited
// wire behavior, kept for compatibility.
package paging

func Offset(from, size int) int {
	page := 0
	if from > 0 {
		page = from / size
	}
	return page * size
}
