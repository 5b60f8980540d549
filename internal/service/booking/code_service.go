package booking

import (
	"context"

	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/qrcode"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// maxCodeAttempts 确认码生成重试上限
const maxCodeAttempts = 5

// CodeService 确认码服务
type CodeService struct {
	bookingRepo *repository.BookingRepository
	qrGenerator *qrcode.Generator
}

// NewCodeService 创建确认码服务
func NewCodeService(bookingRepo *repository.BookingRepository) *CodeService {
	return &CodeService{
		bookingRepo: bookingRepo,
		qrGenerator: qrcode.NewGenerator(qrcode.WithSize(256), qrcode.WithRecoveryLevel(qrcode.Medium)),
	}
}

// GenerateUniqueCode 生成全局唯一的确认码
// 碰撞时重试，字符集 32 个字符 6 位，碰撞概率约 1/10 亿
func (s *CodeService) GenerateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := utils.GenerateConfirmationCode()
		exists, err := s.bookingRepo.ExistsByConfirmationCode(ctx, code)
		if err != nil {
			return "", errors.ErrDatabaseError.WithError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.ErrOperationFailed.WithMessage("确认码生成失败，请重试")
}

// GenerateQRCodePNG 生成确认码二维码 PNG
// 前台扫码后直接按确认码调出预订
func (s *CodeService) GenerateQRCodePNG(code string) ([]byte, error) {
	if !utils.ValidateConfirmationCode(code) {
		return nil, errors.ErrInvalidParams.WithMessage("无效的确认码格式")
	}
	data, err := s.qrGenerator.GeneratePNG(code)
	if err != nil {
		return nil, errors.ErrOperationFailed.WithError(err)
	}
	return data, nil
}
