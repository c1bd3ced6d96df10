package model

import (
	"time"
)

// User 本地用户映射表
// 主键是身份服务签发的 subject id (UUID)，不是自增 ID
// 首次会话解析时懒创建，系统内永不删除
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 当前设计：一个用户最多拥有一个店铺
	// Store.OwnerID 上的唯一索引是硬保障，应用层校验只做快速报错
	Stores []Store `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
