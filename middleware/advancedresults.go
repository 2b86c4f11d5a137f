package middleware

import (
	"strings"

	"devcamper/database"

	"github.com/gofiber/fiber/v2"
)

// Resource describes a listable collection for AdvancedResults.
type Resource struct {
	Model    interface{}              // empty model used for counting, e.g. &models.Bootcamp{}
	NewSlice func() interface{}       // returns a pointer to a slice rows are scanned into
	Fields   map[string]string        // query field -> column whitelist
	Preloads []string                 // relations resolved inline into the result
}

// Page points at a neighbouring page in a paginated result
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev links of a list result
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Results is the envelope AdvancedResults stores in the request context
type Results struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination Pagination  `json:"pagination"`
	Data       interface{} `json:"data"`
}

// control parameters, everything else is treated as a filter predicate
func isControlParam(key string) bool {
	return key == "select" || key == "sort" || key == "page" || key == "limit"
}

// AdvancedResults translates the query string into a filtered, sorted,
// paginated and field-limited read over the given resource, then stores the
// result envelope in c.Locals("advancedResults") for the handler to emit.
//
// Filter params support operator suffixes: field[gt|gte|lt|lte|in]. Fields
// are checked against the resource whitelist; a filter on an unknown field
// matches nothing, mirroring how a filter on a nonexistent document field
// behaved in the store this API grew up on.
//
// When select is present the rows are scanned into plain column maps, so
// res.Preloads do not apply: a field-limited list returns bare columns with
// no relations expanded.
func AdvancedResults(res Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.Database.Db

		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		limit := c.QueryInt("limit", 25)
		if limit < 1 {
			limit = 25
		}

		query := db.Model(res.Model)
		noMatch := false

		for key, value := range c.Queries() {
			if isControlParam(key) {
				continue
			}

			field, op := key, "eq"
			if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
				field, op = key[:i], key[i+1:len(key)-1]
			}

			column, ok := res.Fields[field]
			if !ok {
				noMatch = true
				continue
			}

			switch op {
			case "gt":
				query = query.Where(column+" > ?", value)
			case "gte":
				query = query.Where(column+" >= ?", value)
			case "lt":
				query = query.Where(column+" < ?", value)
			case "lte":
				query = query.Where(column+" <= ?", value)
			case "in":
				query = query.Where(column+" IN ?", strings.Split(value, ","))
			default:
				query = query.Where(column+" = ?", value)
			}
		}

		// Sort: comma separated fields, '-' prefix means descending.
		// Default is newest first.
		if sort := c.Query("sort"); sort != "" {
			for _, field := range strings.Split(sort, ",") {
				direction := " ASC"
				if strings.HasPrefix(field, "-") {
					field = field[1:]
					direction = " DESC"
				}
				if column, ok := res.Fields[field]; ok {
					query = query.Order(column + direction)
				}
			}
		} else {
			query = query.Order("created_at DESC")
		}

		// total is the unfiltered collection count. The original app computed
		// next/prev against this count, so filtered lists inherit its slightly
		// off pagination links. Kept as specified behaviour.
		var total int64
		if err := db.Model(res.Model).Count(&total).Error; err != nil {
			return err
		}

		startIndex := (page - 1) * limit
		endIndex := page * limit
		query = query.Offset(startIndex).Limit(limit)

		var data interface{}
		count := 0

		switch {
		case noMatch:
			data = []interface{}{}
		case c.Query("select") != "":
			// scan into maps so unselected fields are absent from the payload
			columns := []string{"id"}
			for _, field := range strings.Split(c.Query("select"), ",") {
				if column, ok := res.Fields[field]; ok {
					columns = append(columns, column)
				}
			}
			rows := make([]map[string]interface{}, 0)
			if err := query.Select(columns).Find(&rows).Error; err != nil {
				return err
			}
			data = rows
			count = len(rows)
		default:
			for _, preload := range res.Preloads {
				query = query.Preload(preload)
			}
			slice := res.NewSlice()
			result := query.Find(slice)
			if result.Error != nil {
				return result.Error
			}
			data = slice
			count = int(result.RowsAffected)
		}

		pagination := Pagination{}
		if int64(endIndex) < total {
			pagination.Next = &Page{Page: page + 1, Limit: limit}
		}
		if startIndex > 0 {
			pagination.Prev = &Page{Page: page - 1, Limit: limit}
		}

		c.Locals("advancedResults", Results{
			Success:    true,
			Count:      count,
			Pagination: pagination,
			Data:       data,
		})

		return c.Next()
	}
}
