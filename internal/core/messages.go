// AngelaMos | 2026
// messages.go

package core

import (
	"errors"
)

type MessageID string

const (
	MsgMissingCredentials  MessageID = "missing_credentials"
	MsgInvalidCredentials  MessageID = "invalid_credentials"
	MsgLoginSuccess        MessageID = "login_success"
	MsgLogoutSuccess       MessageID = "logout_success"
	MsgLoginRequiredAdmin  MessageID = "login_required_admin"
	MsgLoginRequiredMerch  MessageID = "login_required_merchant"
	MsgForbidden           MessageID = "forbidden"
	MsgAccountDisabled     MessageID = "account_disabled"
	MsgNotFound            MessageID = "not_found"
	MsgNotModifiable       MessageID = "not_modifiable"
	MsgDuplicateIdentity   MessageID = "duplicate_identity"
	MsgValidation          MessageID = "validation"
	MsgConnectivity        MessageID = "connectivity"
	MsgServer              MessageID = "server"
	MsgGeneric             MessageID = "generic"
	MsgUnsupported         MessageID = "unsupported"
	MsgDeleted             MessageID = "deleted"
	MsgCreated             MessageID = "created"
	MsgUpdated             MessageID = "updated"
	MsgActivated           MessageID = "activated"
	MsgDeactivated         MessageID = "deactivated"
	MsgOrderStatusUpdated  MessageID = "order_status_updated"
	MsgDefaultStoreName    MessageID = "default_store_name"
	MsgDefaultStoreDetails MessageID = "default_store_description"
	MsgRateLimited         MessageID = "rate_limited"
)

var catalogs = map[string]map[MessageID]string{
	"ar": {
		MsgMissingCredentials:  "يرجى إدخال اسم المستخدم وكلمة المرور",
		MsgInvalidCredentials:  "اسم المستخدم أو كلمة المرور غير صحيحة",
		MsgLoginSuccess:        "تم تسجيل الدخول بنجاح",
		MsgLogoutSuccess:       "تم تسجيل الخروج بنجاح",
		MsgLoginRequiredAdmin:  "يجب تسجيل الدخول كمدير أولاً",
		MsgLoginRequiredMerch:  "يجب تسجيل الدخول كتاجر أولاً",
		MsgForbidden:           "غير مصرح لك بالوصول إلى هذه الصفحة",
		MsgAccountDisabled:     "حسابك معطل، يرجى التواصل مع الإدارة",
		MsgNotFound:            "البيانات غير موجودة",
		MsgNotModifiable:       "لا يمكن تعديل هذا العنصر",
		MsgDuplicateIdentity:   "المستخدم موجود بالفعل",
		MsgValidation:          "البيانات المدخلة غير صالحة",
		MsgConnectivity:        "فشل في الاتصال بالخادم",
		MsgServer:              "خطأ في الخادم. يرجى المحاولة لاحقاً",
		MsgGeneric:             "حدث خطأ غير متوقع",
		MsgUnsupported:         "هذه العملية غير مدعومة",
		MsgDeleted:             "تم الحذف بنجاح",
		MsgCreated:             "تمت الإضافة بنجاح",
		MsgUpdated:             "تم التحديث بنجاح",
		MsgActivated:           "تم التفعيل بنجاح",
		MsgDeactivated:         "تم إلغاء التفعيل بنجاح",
		MsgOrderStatusUpdated:  "تم تحديث حالة الطلب بنجاح",
		MsgDefaultStoreName:    "متجر %s",
		MsgDefaultStoreDetails: "متجر جديد",
		MsgRateLimited:         "محاولات كثيرة، يرجى المحاولة بعد قليل",
	},
	"en": {
		MsgMissingCredentials:  "Please enter your username and password",
		MsgInvalidCredentials:  "Invalid username or password",
		MsgLoginSuccess:        "Signed in successfully",
		MsgLogoutSuccess:       "Signed out successfully",
		MsgLoginRequiredAdmin:  "Please sign in as an administrator first",
		MsgLoginRequiredMerch:  "Please sign in as a merchant first",
		MsgForbidden:           "You are not allowed to access this page",
		MsgAccountDisabled:     "Your account is disabled, please contact the administration",
		MsgNotFound:            "The requested item was not found",
		MsgNotModifiable:       "This item cannot be modified",
		MsgDuplicateIdentity:   "The user already exists",
		MsgValidation:          "The submitted data is invalid",
		MsgConnectivity:        "Could not reach the server",
		MsgServer:              "Server error. Please try again later",
		MsgGeneric:             "An unexpected error occurred",
		MsgUnsupported:         "This operation is not supported",
		MsgDeleted:             "Deleted successfully",
		MsgCreated:             "Created successfully",
		MsgUpdated:             "Updated successfully",
		MsgActivated:           "Activated successfully",
		MsgDeactivated:         "Deactivated successfully",
		MsgOrderStatusUpdated:  "Order status updated successfully",
		MsgDefaultStoreName:    "%s's store",
		MsgDefaultStoreDetails: "New store",
		MsgRateLimited:         "Too many attempts, please try again shortly",
	},
}

// Messages resolves user-facing text for one locale.
type Messages struct {
	catalog map[MessageID]string
}

func NewMessages(locale string) *Messages {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs["ar"]
	}
	return &Messages{catalog: catalog}
}

func (m *Messages) Get(id MessageID) string {
	if m == nil {
		return string(id)
	}
	if msg, ok := m.catalog[id]; ok {
		return msg
	}
	return string(id)
}

// ForError picks the user-facing message for an error. Collaborator and
// unexpected failures collapse to a generic message.
func (m *Messages) ForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		var appErr *AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			return appErr.Message
		}
		return m.Get(MsgValidation)
	case errors.Is(err, ErrDuplicateIdentity):
		return m.Get(MsgDuplicateIdentity)
	case errors.Is(err, ErrInvalidCredentials):
		return m.Get(MsgInvalidCredentials)
	case errors.Is(err, ErrForbidden):
		return m.Get(MsgForbidden)
	case errors.Is(err, ErrAccountDisabled):
		return m.Get(MsgAccountDisabled)
	case errors.Is(err, ErrNotFound):
		return m.Get(MsgNotFound)
	case errors.Is(err, ErrNotModifiable):
		return m.Get(MsgNotModifiable)
	case errors.Is(err, ErrUnsupported):
		return m.Get(MsgUnsupported)
	case errors.Is(err, ErrConnectivity):
		return m.Get(MsgConnectivity)
	case errors.Is(err, ErrServer):
		return m.Get(MsgServer)
	default:
		return m.Get(MsgGeneric)
	}
}
