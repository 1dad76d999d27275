package constants

const (
	MISSING_LOGIN_INPUT        = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME           = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD           = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE         = "Tài khoản đã bị khoá"
	ERROR_INTERNAL_ERROR       = "Lỗi hệ thống"
	ERROR_PARSE_DATA_TO_LOCALS = "Không đọc được dữ liệu đã validate"
	ERROR_CREATE               = "Tạo mới thất bại"
	ERROR_EDIT                 = "Cập nhật thất bại"
	ERROR_DELETE               = "Xoá thất bại"
	ERROR_NOT_FOUND            = "Không tìm thấy dữ liệu"
	NOT_FOUND_RECORDS          = "Không tìm thấy bản ghi"
	ERROR_INPUT                = "Dữ liệu đầu vào không hợp lệ"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"
	CAN_NOT_HASH_PASSWORD      = "Không thể mã hoá mật khẩu"
)

const (
	ROLE_ADMIN        = "ADMIN"
	ROLE_MANAGER      = "MANAGER"
	ROLE_RECEPTIONIST = "RECEPTIONIST"
)
