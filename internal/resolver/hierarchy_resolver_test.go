package resolver

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
)

// fakeCarrier reference client cố định cho test, đếm số lần fetch và cho
// phép inject lỗi theo level
type fakeCarrier struct {
	provinceCalls int
	districtCalls int
	wardCalls     int

	failDistricts error
}

func (f *fakeCarrier) ListProvinces(ctx context.Context) ([]models.Province, error) {
	f.provinceCalls++
	return []models.Province{
		{ProvinceID: 201, ProvinceName: "Hà Nội", NameExtension: []string{"HN"}},
		{ProvinceID: 202, ProvinceName: "Hồ Chí Minh", NameExtension: []string{"TP Hồ Chí Minh", "HCM", "Sài Gòn"}},
	}, nil
}

func (f *fakeCarrier) ListDistricts(ctx context.Context, provinceID int) ([]models.District, error) {
	f.districtCalls++
	if f.failDistricts != nil {
		return nil, f.failDistricts
	}
	switch provinceID {
	case 201:
		return []models.District{
			{DistrictID: 1542, ProvinceID: 201, DistrictName: "Hà Đông"},
			{DistrictID: 1484, ProvinceID: 201, DistrictName: "Ba Đình"},
		}, nil
	case 202:
		return []models.District{
			{DistrictID: 1444, ProvinceID: 202, DistrictName: "Quận 3"},
			{DistrictID: 1442, ProvinceID: 202, DistrictName: "Quận 1"},
		}, nil
	}
	return nil, nil
}

func (f *fakeCarrier) ListWards(ctx context.Context, districtID int) ([]models.Ward, error) {
	f.wardCalls++
	switch districtID {
	case 1444:
		return []models.Ward{
			{WardCode: "20308", DistrictID: 1444, WardName: "Phường 1"},
			{WardCode: "20309", DistrictID: 1444, WardName: "Phường 2"},
		}, nil
	case 1542:
		return []models.Ward{
			{WardCode: "1A0807", DistrictID: 1542, WardName: "Phường Yết Kiêu"},
		}, nil
	}
	return nil, nil
}

func TestResolver_FullCascade(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	err := r.CascadeFromProvince(ctx, &res, "TP Ho Chi Minh", "Quan 3", "Phuong 1")
	if err != nil {
		t.Fatalf("CascadeFromProvince: %v", err)
	}

	if res.Province == nil || res.Province.ProvinceID != 202 {
		t.Fatalf("province = %+v, want id 202", res.Province)
	}
	if res.District == nil || res.District.DistrictID != 1444 {
		t.Fatalf("district = %+v, want id 1444", res.District)
	}
	if res.Ward == nil || res.Ward.WardCode != "20308" {
		t.Fatalf("ward = %+v, want code 20308", res.Ward)
	}
	if got := res.WardStatus(); got.Status != models.StatusResolved || got.MatchedName != "Phường 1" {
		t.Errorf("WardStatus = %+v", got)
	}
}

// TestResolver_CachesReferenceLists cùng một session không được fetch lại
// danh sách đã có
func TestResolver_CachesReferenceLists(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	for i := 0; i < 3; i++ {
		if err := r.CascadeFromProvince(ctx, &res, "Ha Noi", "Ha Dong", "Yet Kieu"); err != nil {
			t.Fatal(err)
		}
	}

	if fake.provinceCalls != 1 {
		t.Errorf("provinceCalls = %d, want 1", fake.provinceCalls)
	}
	if fake.districtCalls != 1 {
		t.Errorf("districtCalls = %d, want 1", fake.districtCalls)
	}
	if fake.wardCalls != 1 {
		t.Errorf("wardCalls = %d, want 1", fake.wardCalls)
	}
}

// TestResolver_CrossProvinceDistrict district tồn tại ở tỉnh KHÁC không
// được match — resolve chỉ tìm trong subtree của tỉnh hiện tại
func TestResolver_CrossProvinceDistrict(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	if err := r.CascadeFromProvince(ctx, &res, "Ha Noi", "", ""); err != nil {
		t.Fatal(err)
	}
	if res.Province == nil || res.Province.ProvinceID != 201 {
		t.Fatalf("province = %+v", res.Province)
	}

	// "Quận 3" chỉ có dưới HCM (202), không có dưới Hà Nội
	if err := r.CascadeFromDistrict(ctx, &res, "Ha Noi", "Quận 3", ""); err != nil {
		t.Fatal(err)
	}
	if res.District != nil {
		t.Errorf("district phải unresolved, got %+v", res.District)
	}
	if res.Province.ProvinceID != 201 {
		t.Errorf("cấp trên không được bị đổi bởi edit cấp dưới")
	}
}

// TestResolver_ProvinceEditInvalidatesDownstream đổi tỉnh phải dọn
// district/ward của tỉnh cũ
func TestResolver_ProvinceEditInvalidatesDownstream(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	if err := r.CascadeFromProvince(ctx, &res, "HCM", "Quan 3", "Phuong 1"); err != nil {
		t.Fatal(err)
	}
	if res.District == nil || res.Ward == nil {
		t.Fatal("setup: phải resolve đủ 3 cấp")
	}

	// Đổi sang Hà Nội, text district/ward cũ không tồn tại ở đó
	if err := r.CascadeFromProvince(ctx, &res, "Ha Noi", "Quan 3", "Phuong 1"); err != nil {
		t.Fatal(err)
	}
	if res.Province == nil || res.Province.ProvinceID != 201 {
		t.Fatalf("province = %+v", res.Province)
	}
	if res.District != nil || res.Ward != nil {
		t.Errorf("district/ward của tỉnh cũ phải bị dọn: %+v %+v", res.District, res.Ward)
	}
}

func TestResolver_UnknownProvinceClearsAll(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	if err := r.CascadeFromProvince(ctx, &res, "HCM", "Quan 3", "Phuong 1"); err != nil {
		t.Fatal(err)
	}
	if err := r.CascadeFromProvince(ctx, &res, "vung dat khong ton tai", "Quan 3", "Phuong 1"); err != nil {
		t.Fatal(err)
	}
	if res.Province != nil || res.District != nil || res.Ward != nil {
		t.Errorf("mọi cấp phải unresolved: %+v", res)
	}
}

// TestResolver_FetchFailure lỗi fetch trả error cho caller, cấp bị ảnh
// hưởng để unresolved, và retry được sau khi hết lỗi
func TestResolver_FetchFailure(t *testing.T) {
	fake := &fakeCarrier{failDistricts: errors.New("network down")}
	r := New(fake, zap.NewNop())
	ctx := context.Background()

	var res Resolution
	err := r.CascadeFromProvince(ctx, &res, "Ha Noi", "Ha Dong", "Yet Kieu")
	if err == nil {
		t.Fatal("phải trả về error khi fetch district hỏng")
	}
	if res.Province == nil {
		t.Error("province đã resolve xong trước đó phải được giữ")
	}
	if res.District != nil || res.Ward != nil {
		t.Errorf("cấp hỏng phải unresolved: %+v %+v", res.District, res.Ward)
	}

	// Hết lỗi thì edit tiếp theo resolve được (không có cache độc)
	fake.failDistricts = nil
	if err := r.CascadeFromDistrict(ctx, &res, "Ha Noi", "Ha Dong", "Yet Kieu"); err != nil {
		t.Fatal(err)
	}
	if res.District == nil || res.District.DistrictID != 1542 {
		t.Errorf("district = %+v, want 1542", res.District)
	}
	if res.Ward == nil || res.Ward.WardCode != "1A0807" {
		t.Errorf("ward = %+v, want 1A0807", res.Ward)
	}
}

func TestResolver_WardEditWithoutDistrict(t *testing.T) {
	fake := &fakeCarrier{}
	r := New(fake, zap.NewNop())

	var res Resolution
	if err := r.CascadeFromWard(context.Background(), &res, "Phuong 1"); err != nil {
		t.Fatal(err)
	}
	if res.Ward != nil {
		t.Errorf("không có district thì ward phải unresolved, got %+v", res.Ward)
	}
	if fake.wardCalls != 0 {
		t.Errorf("không được fetch ward khi chưa có district")
	}
}
