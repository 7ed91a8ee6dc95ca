package api

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/services"
)

var sortableColumns = []struct {
	field    services.SortField
	labelKey string
}{
	{field: services.SortByCreatedAt, labelKey: "dashboard.column.created_at"},
	{field: services.SortByCustomerName, labelKey: "dashboard.column.customer_name"},
	{field: services.SortByEmail, labelKey: "dashboard.column.email"},
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	messages := currentMessages(c)
	query := services.NormalizeListQuery(c.Query("q"), c.Query("sort"), c.Query("dir"))
	data := fiber.Map{
		"Title":           localizedPageTitle(messages, "meta.title.dashboard", "Quotes"),
		"Flash":           handler.popFlashCookie(c),
		"Query":           query,
		"RefreshPath":     dashboardPath(query.Term, query.Field, query.Direction),
		"ClearSearchPath": dashboardPath("", query.Field, query.Direction),
		"Stats":           services.ListStats{},
	}

	all, err := handler.quotes.ListActive(c.UserContext())
	if err != nil {
		log.Printf("list quotes: %v", err)
		data["LoadError"] = true
		c.Status(fiber.StatusInternalServerError)
		return handler.render(c, "dashboard", data)
	}

	rows := services.ArrangeQuotes(all, query)
	data["Rows"] = rows
	data["Stats"] = services.ComputeListStats(all, rows, handler.now(), handler.location)
	data["Columns"] = buildSortColumns(query)
	return handler.render(c, "dashboard", data)
}

// ArchiveEntered re-reads the list and archives the entered quotes it finds.
// The count shown in the confirmation came from an earlier read and is not
// reconciled with this one.
func (handler *Handler) ArchiveEntered(c *fiber.Ctx) error {
	messages := currentMessages(c)
	ctx := c.UserContext()

	fetched, err := handler.quotes.ListActive(ctx)
	if err != nil {
		log.Printf("list quotes before archive: %v", err)
		handler.setFlashCookie(c, FlashPayload{Error: translateMessage(messages, "dashboard.error.archive_failed")})
		return redirectTo(c, "/dashboard")
	}

	archived, err := handler.quotes.ArchiveEntered(ctx, fetched)
	switch {
	case errors.Is(err, services.ErrNothingToArchive):
		handler.setFlashCookie(c, FlashPayload{Notice: translateMessage(messages, "dashboard.notice.nothing_to_archive")})
	case err != nil:
		log.Printf("archive entered quotes: %v", err)
		handler.setFlashCookie(c, FlashPayload{Error: translateMessage(messages, "dashboard.error.archive_failed")})
	default:
		handler.setFlashCookie(c, FlashPayload{Notice: translateMessagef(messages, "dashboard.notice.archived", archived)})
	}
	return redirectTo(c, "/dashboard")
}

func (handler *Handler) SeedQuotes(c *fiber.Ctx) error {
	if handler.seeder == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	results := handler.seeder.Seed(c.UserContext())
	handler.setFlashCookie(c, FlashPayload{
		Notice: translateMessagef(currentMessages(c), "dashboard.notice.seeded", services.CountSeeded(results), len(results)),
	})
	return redirectTo(c, "/dashboard")
}

func buildSortColumns(query services.ListQuery) []sortColumn {
	columns := make([]sortColumn, 0, len(sortableColumns))
	for _, column := range sortableColumns {
		active := query.Field == column.field
		next := services.SortAsc
		if active && query.Direction == services.SortAsc {
			next = services.SortDesc
		}
		columns = append(columns, sortColumn{
			Field:     column.field,
			LabelKey:  column.labelKey,
			Path:      dashboardPath(query.Term, column.field, next),
			Active:    active,
			Direction: query.Direction,
		})
	}
	return columns
}

func dashboardPath(term string, field services.SortField, direction services.SortDirection) string {
	values := url.Values{}
	if term != "" {
		values.Set("q", term)
	}
	values.Set("sort", string(field))
	values.Set("dir", string(direction))
	return "/dashboard?" + values.Encode()
}
