package store

import (
	"context"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// Authorize 是唯一的归属判定：仅简历属主或管理员可通过。
// 所有子实体的写操作都必须先解析父简历并经过这里。
func Authorize(actor Actor, resume *database.Resume) error {
	if actor.IsAdmin() || actor.ID == resume.UserID {
		return nil
	}
	return apperr.ErrOwnershipViolation
}

// resumeFor 加载简历并执行归属校验，供所有子实体操作复用。
func (s *Store) resumeFor(ctx context.Context, actor Actor, resumeID uint) (*database.Resume, error) {
	var resume database.Resume
	if err := s.db.WithContext(ctx).First(&resume, resumeID).Error; err != nil {
		return nil, notFoundOr("load resume", err)
	}
	if err := Authorize(actor, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// OwnedResume 加载简历并要求操作者为属主或管理员。
// 供需要写权限但不走子实体路径的调用方（如分享链接）使用。
func (s *Store) OwnedResume(ctx context.Context, actor Actor, resumeID uint) (*database.Resume, error) {
	return s.resumeFor(ctx, actor, resumeID)
}

// readableBy 判断简历对操作者是否可读：公开/分享的简历任何人可读，
// 私有简历仅属主与管理员可读。
func readableBy(actor Actor, resume *database.Resume) bool {
	switch resume.Visibility {
	case database.VisibilityPublic, database.VisibilityShared:
		return true
	default:
		return actor.IsAdmin() || actor.ID == resume.UserID
	}
}
