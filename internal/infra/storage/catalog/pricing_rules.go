package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

var pricingRuleColumns = []string{"id", "name", "kind", "multiplier", "is_active", "description", "created_at"}

// CreatePricingRule создает правило ценообразования
func (r *Repository) CreatePricingRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(pricingRulesTable).
		Columns("name", "kind", "multiplier", "is_active", "description").
		Values(rule.Name, rule.Kind, rule.Multiplier, rule.IsActive, rule.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePricingRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePricingRule - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// GetPricingRuleByID получает правило по ID
func (r *Repository) GetPricingRuleByID(ctx context.Context, id int64) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(pricingRuleColumns...).
		From(pricingRulesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPricingRuleByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanPricingRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPricingRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPricingRuleByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListPricingRules получает правила в порядке создания. activeOnly оставляет только активные.
func (r *Repository) ListPricingRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(pricingRuleColumns...).
		From(pricingRulesTable).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPricingRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPricingRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.PricingRule, 0)
	for rows.Next() {
		rule, err := scanPricingRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPricingRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPricingRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpdatePricingRule обновляет правило
func (r *Repository) UpdatePricingRule(ctx context.Context, id int64, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(pricingRulesTable).
		Set("name", rule.Name).
		Set("kind", rule.Kind).
		Set("multiplier", rule.Multiplier).
		Set("is_active", rule.IsActive).
		Set("description", rule.Description).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricingRule - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPricingRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricingRule - execute update: %v", ErrExecQuery, err)
	}

	rule.ID = id

	return rule, nil
}

// DeletePricingRule удаляет правило
func (r *Repository) DeletePricingRule(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DeletePricingRule", pricingRulesTable, id, ErrPricingRuleNotFound)
}

func scanPricingRule(row rowScanner) (*domain.PricingRule, error) {
	var rule domain.PricingRule

	err := row.Scan(
		&rule.ID,
		&rule.Name,
		&rule.Kind,
		&rule.Multiplier,
		&rule.IsActive,
		&rule.Description,
		&rule.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}
