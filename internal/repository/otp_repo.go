package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type OTPRepository interface {
	Replace(otp *model.PasswordOTP) error
	Find(email, code string) (*model.PasswordOTP, error)
	DeleteByEmail(email string) error
}

type otpRepo struct {
	db *gorm.DB
}

func NewOTPRepo(db *gorm.DB) OTPRepository {
	return &otpRepo{db}
}

// Replace clears any previous codes for the address before storing the new
// one, so only the latest issued code can succeed.
func (r *otpRepo) Replace(otp *model.PasswordOTP) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", otp.Email).Delete(&model.PasswordOTP{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

func (r *otpRepo) Find(email, code string) (*model.PasswordOTP, error) {
	var otp model.PasswordOTP
	err := r.db.Where("email = ? AND code = ?", email, code).First(&otp).Error
	return &otp, err
}

func (r *otpRepo) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&model.PasswordOTP{}).Error
}
