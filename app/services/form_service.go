package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/config"
	"github.com/fulfillment-service/app/models"
	"github.com/fulfillment-service/helpers/utils"
	"github.com/fulfillment-service/internal/carrier"
	"github.com/fulfillment-service/internal/parser"
	"github.com/fulfillment-service/internal/resolver"
)

// Lỗi nghiệp vụ của form service
var (
	ErrSessionNotFound   = errors.New("form session không tồn tại hoặc đã đóng")
	ErrSessionNotEditing = errors.New("form session không ở trạng thái editing")
	ErrUnknownField      = errors.New("field không hợp lệ")
)

// Trạng thái của một form session
const (
	StateEditing    = "editing"
	StateSubmitting = "submitting"
)

// Các field ngoài 3 cấp hành chính mà staff sửa được trên form
const (
	FieldRecipientName  = "recipient_name"
	FieldPhone          = "phone"
	FieldStreet         = "street"
	FieldNote           = "note"
	FieldWeight         = "weight"
	FieldLength         = "length"
	FieldWidth          = "width"
	FieldHeight         = "height"
	FieldCODAmount      = "cod_amount"
	FieldInsuranceValue = "insurance_value"
)

// formSession một form tạo vận đơn đang mở. Sống từ lúc staff mở đến khi
// submit thành công hoặc đóng — không persist.
type formSession struct {
	id      string
	orderID string

	mu           sync.Mutex
	state        string
	draft        models.ShippingOrderDraft
	districtText string // text quận đang gõ (draft chỉ giữ code)
	wardText     string
	res          resolver.Resolution
	gen          map[string]uint64 // generation theo field, cho last-edit-wins
	lastError    string

	resolver *resolver.Resolver
}

// bumpGen tăng generation của một field, trả về giá trị mới. Caller phải
// giữ sess.mu.
func (s *formSession) bumpGen(field string) uint64 {
	s.gen[field]++
	return s.gen[field]
}

// Snapshot trạng thái hiện tại của một session, đủ để render form với
// live feedback theo từng cấp
type Snapshot struct {
	SessionID string                    `json:"session_id"`
	OrderID   string                    `json:"order_id"`
	State     string                    `json:"state"`
	Draft     models.ShippingOrderDraft `json:"draft"`

	DistrictText string `json:"district_text"`
	WardText     string `json:"ward_text"`

	Province models.LevelStatus `json:"province"`
	District models.LevelStatus `json:"district"`
	Ward     models.LevelStatus `json:"ward"`

	Suggestions map[string][]models.Suggestion `json:"suggestions,omitempty"`
	LastError   string                         `json:"last_error,omitempty"`
}

// FormService state machine của form tạo vận đơn: mở form từ order, nhận
// edit từng field với cascade resolve, validate và submit sang carrier.
// Mỗi session có Resolver riêng — cache reference không lây giữa các
// session (client bên dưới có thể tự cache chung).
type FormService struct {
	refClient carrier.ReferenceClient
	orders    carrier.OrderClient
	suggester *SuggestionService
	defaults  config.PackageDefaults
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*formSession
}

// NewFormService tạo mới FormService
func NewFormService(refClient carrier.ReferenceClient, orders carrier.OrderClient, suggester *SuggestionService, defaults config.PackageDefaults, logger *zap.Logger) *FormService {
	return &FormService{
		refClient: refClient,
		orders:    orders,
		suggester: suggester,
		defaults:  defaults,
		logger:    logger,
		sessions:  make(map[string]*formSession),
	}
}

// OpenForOrder mở form cho một order: parse địa chỉ đã lưu, seed draft và
// resolve best-effort cả 3 cấp. Lỗi fetch khi resolve ban đầu không chặn
// việc mở form — cấp bị ảnh hưởng để unresolved, staff sửa tay sau.
func (fs *FormService) OpenForOrder(ctx context.Context, order models.Order) (*Snapshot, error) {
	parsed := parser.ParseAddress(order.ShippingAddress)

	phone := order.CustomerPhone
	if phone == "" {
		phone = parsed.Phone
	}

	items := make([]models.DraftItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, models.DraftItem{
			Name:     it.ProductName,
			Code:     it.SKU,
			Quantity: it.Quantity,
			Price:    it.UnitPrice,
			Weight:   it.Weight,
		})
	}

	sess := &formSession{
		id:      utils.GenerateSessionID(),
		orderID: order.ID,
		state:   StateEditing,
		draft: models.ShippingOrderDraft{
			ToName:         order.CustomerName,
			ToPhone:        phone,
			ToAddress:      parsed.Street,
			ToProvinceName: parsed.Province,
			Weight:         fs.defaults.Weight,
			Length:         fs.defaults.Length,
			Width:          fs.defaults.Width,
			Height:         fs.defaults.Height,
			CODAmount:      order.TotalAmount,
			InsuranceValue: order.TotalAmount,
			Items:          items,
		},
		districtText: parsed.District,
		wardText:     parsed.Ward,
		gen:          make(map[string]uint64),
		resolver:     resolver.New(fs.refClient, fs.logger),
	}

	fs.mu.Lock()
	fs.sessions[sess.id] = sess
	fs.mu.Unlock()

	fs.logger.Info("Đã mở form vận đơn",
		zap.String("session_id", sess.id),
		zap.String("order_id", order.ID),
		zap.String("parsed_province", parsed.Province),
		zap.String("parsed_district", parsed.District),
		zap.String("parsed_ward", parsed.Ward))

	// Resolve ban đầu từ kết quả parse, đi theo đúng đường cascade của một
	// edit cấp tỉnh
	sess.mu.Lock()
	gens := fs.captureGens(sess)
	resCopy := sess.res
	sess.mu.Unlock()

	cascadeErr := sess.resolver.CascadeFromProvince(ctx, &resCopy, parsed.Province, parsed.District, parsed.Ward)
	fs.merge(sess, models.FieldProvince, gens, resCopy, cascadeErr)

	return fs.snapshot(ctx, sess), nil
}

// EditField cập nhật một field của draft. Field hành chính (province/
// district/ward) kích hoạt cascade resolve tương ứng; kết quả chỉ được
// merge nếu không có edit mới hơn chen vào (last-edit-wins).
func (fs *FormService) EditField(ctx context.Context, id, field, value string) (*Snapshot, error) {
	sess, err := fs.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state != StateEditing {
		sess.mu.Unlock()
		return nil, ErrSessionNotEditing
	}
	sess.lastError = ""

	switch field {
	case models.FieldProvince, models.FieldDistrict, models.FieldWard:
		// rơi xuống nhánh cascade phía dưới
	default:
		if err := setPlainField(&sess.draft, field, value); err != nil {
			sess.mu.Unlock()
			return nil, err
		}
		sess.mu.Unlock()
		return fs.snapshot(ctx, sess), nil
	}

	// Text hiển thị cập nhật ngay, không chờ resolve
	switch field {
	case models.FieldProvince:
		sess.draft.ToProvinceName = value
	case models.FieldDistrict:
		sess.districtText = value
	case models.FieldWard:
		sess.wardText = value
	}
	sess.bumpGen(field)
	gens := fs.captureGens(sess)
	provinceText := sess.draft.ToProvinceName
	districtText := sess.districtText
	wardText := sess.wardText
	resCopy := sess.res
	sess.mu.Unlock()

	var cascadeErr error
	switch field {
	case models.FieldProvince:
		cascadeErr = sess.resolver.CascadeFromProvince(ctx, &resCopy, provinceText, districtText, wardText)
	case models.FieldDistrict:
		cascadeErr = sess.resolver.CascadeFromDistrict(ctx, &resCopy, provinceText, districtText, wardText)
	case models.FieldWard:
		cascadeErr = sess.resolver.CascadeFromWard(ctx, &resCopy, wardText)
	}
	fs.merge(sess, field, gens, resCopy, cascadeErr)

	return fs.snapshot(ctx, sess), nil
}

// Submit validate draft tại chỗ rồi gửi sang carrier. Draft thiếu
// ward/district bị chặn NGAY, không có network call nào. Submit fail giữ
// nguyên draft để staff sửa và gửi lại.
func (fs *FormService) Submit(ctx context.Context, id string) (string, *Snapshot, error) {
	sess, err := fs.get(id)
	if err != nil {
		return "", nil, err
	}

	sess.mu.Lock()
	if sess.state != StateEditing {
		sess.mu.Unlock()
		return "", nil, ErrSessionNotEditing
	}
	if err := sess.draft.Validate(); err != nil {
		sess.lastError = err.Error()
		sess.mu.Unlock()
		return "", fs.snapshot(ctx, sess), err
	}
	sess.state = StateSubmitting
	draft := sess.draft
	sess.mu.Unlock()

	orderCode, err := fs.orders.CreateOrder(ctx, &draft)

	sess.mu.Lock()
	if err != nil {
		sess.state = StateEditing
		sess.lastError = err.Error()
		sess.mu.Unlock()
		fs.logger.Warn("Submit vận đơn thất bại",
			zap.String("session_id", id), zap.Error(err))
		return "", fs.snapshot(ctx, sess), err
	}
	sess.mu.Unlock()

	// Thành công: session kết thúc, draft bị bỏ
	fs.remove(id)
	fs.logger.Info("Submit vận đơn thành công",
		zap.String("session_id", id),
		zap.String("order_code", orderCode))
	return orderCode, nil, nil
}

// Close hủy form, bỏ draft
func (fs *FormService) Close(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(fs.sessions, id)
	return nil
}

// CancelOrder hủy một vận đơn đã tạo bên carrier
func (fs *FormService) CancelOrder(ctx context.Context, orderCode string) error {
	return fs.orders.CancelOrder(ctx, orderCode)
}

// Snapshot trả về trạng thái hiện tại của session theo id
func (fs *FormService) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := fs.get(id)
	if err != nil {
		return nil, err
	}
	return fs.snapshot(ctx, sess), nil
}

// captureGens chụp generation của CẢ BA cấp hành chính tại thời điểm bắt
// đầu cascade. Một cascade đọc cấp trên và ghi lại toàn bộ Resolution, nên
// edit mới ở bất kỳ cấp nào — kể cả cấp trên field bị edit — cũng làm kết
// quả đang bay thành stale. Caller phải giữ sess.mu.
func (fs *FormService) captureGens(sess *formSession) map[string]uint64 {
	return map[string]uint64{
		models.FieldProvince: sess.gen[models.FieldProvince],
		models.FieldDistrict: sess.gen[models.FieldDistrict],
		models.FieldWard:     sess.gen[models.FieldWard],
	}
}

// merge áp kết quả cascade vào session nếu snapshot generation còn hiện
// hành; kết quả stale bị bỏ trong im lặng (edit mới hơn đã/đang resolve
// lại). Lỗi fetch được ghi vào lastError — cấp bị ảnh hưởng đã được
// cascade dọn sẵn.
func (fs *FormService) merge(sess *formSession, field string, gens map[string]uint64, res resolver.Resolution, cascadeErr error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for f, g := range gens {
		if sess.gen[f] != g {
			fs.logger.Debug("Bỏ kết quả resolve stale",
				zap.String("session_id", sess.id),
				zap.String("field", field),
				zap.String("superseded_by", f))
			return
		}
	}

	sess.res = res
	sess.draft.ToDistrictID = res.DistrictID()
	sess.draft.ToWardCode = res.WardCode()
	if cascadeErr != nil {
		sess.lastError = cascadeErr.Error()
	}
}

func (fs *FormService) get(id string) (*formSession, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	sess, ok := fs.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (fs *FormService) remove(id string) {
	fs.mu.Lock()
	delete(fs.sessions, id)
	fs.mu.Unlock()
}

// snapshot chụp trạng thái session kèm gợi ý cho các cấp chưa resolve.
// Gợi ý chỉ tính được khi cấp cha đã resolve (danh sách đã scope); lỗi
// fetch khi lấy danh sách gợi ý bị bỏ qua — gợi ý là best-effort.
func (fs *FormService) snapshot(ctx context.Context, sess *formSession) *Snapshot {
	sess.mu.Lock()
	snap := &Snapshot{
		SessionID:    sess.id,
		OrderID:      sess.orderID,
		State:        sess.state,
		Draft:        sess.draft,
		DistrictText: sess.districtText,
		WardText:     sess.wardText,
		Province:     sess.res.ProvinceStatus(),
		District:     sess.res.DistrictStatus(),
		Ward:         sess.res.WardStatus(),
		LastError:    sess.lastError,
	}
	res := sess.res
	provinceText := sess.draft.ToProvinceName
	districtText := sess.districtText
	wardText := sess.wardText
	sess.mu.Unlock()

	suggestions := make(map[string][]models.Suggestion)
	if res.Province == nil && provinceText != "" {
		if provinces, err := sess.resolver.Provinces(ctx); err == nil {
			if ranked := fs.suggester.RankProvinces(provinceText, provinces); len(ranked) > 0 {
				suggestions[models.FieldProvince] = ranked
			}
		}
	}
	if res.Province != nil && res.District == nil && districtText != "" {
		if districts, err := sess.resolver.Districts(ctx, res.Province.ProvinceID); err == nil {
			if ranked := fs.suggester.RankDistricts(districtText, districts); len(ranked) > 0 {
				suggestions[models.FieldDistrict] = ranked
			}
		}
	}
	if res.District != nil && res.Ward == nil && wardText != "" {
		if wards, err := sess.resolver.Wards(ctx, res.District.DistrictID); err == nil {
			if ranked := fs.suggester.RankWards(wardText, wards); len(ranked) > 0 {
				suggestions[models.FieldWard] = ranked
			}
		}
	}
	if len(suggestions) > 0 {
		snap.Suggestions = suggestions
	}
	return snap
}

// setPlainField gán các field không phải cấp hành chính. Field số nhận
// value dạng chuỗi từ form và parse tại đây.
func setPlainField(draft *models.ShippingOrderDraft, field, value string) error {
	switch field {
	case FieldRecipientName:
		draft.ToName = value
	case FieldPhone:
		draft.ToPhone = value
	case FieldStreet:
		draft.ToAddress = value
	case FieldNote:
		draft.Note = value
	case FieldWeight, FieldLength, FieldWidth, FieldHeight:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("field %s cần số nguyên: %w", field, err)
		}
		switch field {
		case FieldWeight:
			draft.Weight = n
		case FieldLength:
			draft.Length = n
		case FieldWidth:
			draft.Width = n
		case FieldHeight:
			draft.Height = n
		}
	case FieldCODAmount, FieldInsuranceValue:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("field %s cần số nguyên: %w", field, err)
		}
		if field == FieldCODAmount {
			draft.CODAmount = n
		} else {
			draft.InsuranceValue = n
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}
