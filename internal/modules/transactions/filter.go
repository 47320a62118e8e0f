package transactions

import (
	"strconv"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Filter narrows a transaction listing. Type selects by amount sign; From
// and To only apply when both are set.
type Filter struct {
	Type       string
	CategoryID string
	Search     string
	From       string
	To         string
	Page       int
	PageSize   int
}

// Page is one page of a filtered listing. TotalPages is at least 1.
type Page struct {
	Items      []domain.Transaction `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalItems int                  `json:"totalItems"`
	TotalPages int                  `json:"totalPages"`
}

// ParseFilter reads a filter from query parameters. Missing or invalid
// paging values fall back to page 1 of 10.
func ParseFilter(get func(string) string) Filter {
	return Filter{
		Type:       strings.ToUpper(strings.TrimSpace(get("type"))),
		CategoryID: strings.TrimSpace(get("categoryId")),
		Search:     strings.TrimSpace(get("search")),
		From:       strings.TrimSpace(get("from")),
		To:         strings.TrimSpace(get("to")),
		Page:       atoiOr(get("page"), 1),
		PageSize:   atoiOr(get("pageSize"), defaultPageSize),
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func (f Filter) normalized() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return f
}

func (f Filter) where(userID string) (string, []interface{}) {
	clauses := []string{"user_id = ?"}
	args := []interface{}{userID}

	switch domain.TransactionType(f.Type) {
	case domain.TransactionTypeIncome:
		clauses = append(clauses, "amount > 0")
	case domain.TransactionTypeExpense:
		clauses = append(clauses, "amount < 0")
	}

	if f.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, f.CategoryID)
	}

	if f.Search != "" {
		clauses = append(clauses, `LOWER(description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(f.Search))+"%")
	}

	if f.From != "" && f.To != "" {
		clauses = append(clauses, "date >= ? AND date <= ?")
		args = append(args, f.From, f.To)
	}

	return strings.Join(clauses, " AND "), args
}

func newPage(items []domain.Transaction, f Filter, total int) Page {
	pages := (total + f.PageSize - 1) / f.PageSize
	if pages < 1 {
		pages = 1
	}
	return Page{
		Items:      items,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
