// Package store 实现简历聚合存储：各实体的增删改查、归属校验与一致性约束。
// 唯一性以数据库约束为准，应用层把约束冲突翻译成 apperr 分类后返回。
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// Store 持有数据库句柄，是聚合存储的唯一入口。
type Store struct {
	db *gorm.DB
}

// New 构造 Store。
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Actor 表示执行操作的已认证主体。
type Actor struct {
	ID   uint
	Role database.Role
}

// IsAdmin 判断操作者是否为管理员。
func (a Actor) IsAdmin() bool {
	return a.Role == database.RoleAdmin
}

const pgUniqueViolation = "23505"

// uniqueFields 把约束名/列名映射到对外的冲突字段。
// PostgreSQL 报约束名（gorm 默认 idx_<table>_<column>），
// SQLite 报 "UNIQUE constraint failed: <table>.<column>"。
var uniqueFields = []struct {
	match string
	field string
}{
	{"owner_title", "title"},
	{"resumes.title", "title"},
	{"slug", "slug"},
	{"sections_resume_type", "section_type"},
	{"resume_sections.section_type", "section_type"},
	{"skills_resume_technology", "technology"},
	{"technical_skills.technology_id", "technology"},
	{"technologies.name", "name"},
	{"idx_technologies_name", "name"},
	{"resume_templates", "name"},
	{"email", "email"},
	{"username", "username"},
}

// translateUnique 判断 err 是否为唯一性约束冲突，是则翻译为
// apperr.UniquenessViolation（带冲突字段），否则返回 nil。
func translateUnique(err error) error {
	if err == nil {
		return nil
	}

	var ident string
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		if pgErr.Code != pgUniqueViolation {
			return nil
		}
		ident = pgErr.ConstraintName + " " + pgErr.Detail
	case errors.Is(err, gorm.ErrDuplicatedKey):
		ident = err.Error()
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		ident = err.Error()
	default:
		return nil
	}

	for _, m := range uniqueFields {
		if strings.Contains(ident, m.match) {
			return apperr.Unique(m.field)
		}
	}
	return apperr.Unique("")
}

// TranslateUnique 暴露唯一性冲突翻译，供绕过 Store 直接写库的调用方（如注册）使用。
func TranslateUnique(err error) error {
	return translateUnique(err)
}

// writeError 统一处理写操作错误：优先翻译唯一性冲突，其余包装返回。
func writeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if uniqueErr := translateUnique(err); uniqueErr != nil {
		return uniqueErr
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundOr 把 gorm 的记录缺失错误翻译成 apperr.NotFound。
func notFoundOr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// jsonOrEmpty 把任意结构序列化为 JSON 列值；nil 得到空对象/数组由调用方决定。
func jsonOrEmpty(v any, empty string) (datatypes.JSON, error) {
	if v == nil {
		return datatypes.JSON([]byte(empty)), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return datatypes.JSON(data), nil
}

// technologiesByIDs 按 ID 加载技术目录条目；任一 ID 缺失即 NotFound。
func (s *Store) technologiesByIDs(tx *gorm.DB, ids []uint) ([]database.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var techs []database.Technology
	if err := tx.Where("id IN ?", ids).Find(&techs).Error; err != nil {
		return nil, fmt.Errorf("load technologies: %w", err)
	}
	if len(techs) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("technology reference: %w", apperr.ErrNotFound)
	}
	return techs, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
