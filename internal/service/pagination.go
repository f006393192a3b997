package service

const defaultPageSize = 20

// paginate clamps page parameters and converts them to a limit/offset pair
func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	return pageSize, (page - 1) * pageSize
}
