package logic

import (
	"errors"
	"fmt"

	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/model"
	"gorm.io/gorm"
)

// UserLogic 账号业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建账号业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册账号
func (u *UserLogic) Register(email, password, name string) (*model.UserModel, error) {
	var count int64
	if err := u.db.Model(&model.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("邮箱已被注册")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码处理失败: %w", err)
	}

	user := &model.UserModel{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.UserRoleVisitor,
	}

	if err := u.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建账号失败: %w", err)
	}

	return user, nil
}

// Login 登录校验
func (u *UserLogic) Login(email, password string) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("邮箱或密码错误")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errors.New("邮箱或密码错误")
	}

	return &user, nil
}

// GetUser 获取账号信息
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账号不存在")
		}
		return nil, err
	}
	return &user, nil
}
