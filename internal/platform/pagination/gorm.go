package pagination

import "gorm.io/gorm"

// Find counts the rows matched by q, then loads the requested page in the
// given order. q is forked per statement so its conditions are reused.
func Find[T any](q *gorm.DB, page Page, order string, preloads ...string) ([]*T, int64, error) {
	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	find := base.Order(order).Limit(page.Limit).Offset(page.Offset())
	for _, p := range preloads {
		find = find.Preload(p)
	}
	var results []*T
	if err := find.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
