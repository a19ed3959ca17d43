package domain

// BillType categorizes a processed utility document.
type BillType string

const (
	BillTypeElectricity BillType = "electricity"
	BillTypeWater       BillType = "water"
	BillTypeFuel        BillType = "fuel"
	BillTypeWaste       BillType = "waste"
	BillTypeOther       BillType = "other"
)

// ValidBillTypes is the set of accepted bill type values.
var ValidBillTypes = map[BillType]bool{
	BillTypeElectricity: true,
	BillTypeWater:       true,
	BillTypeFuel:        true,
	BillTypeWaste:       true,
	BillTypeOther:       true,
}

// FuelType distinguishes fuel bills for emission factor selection.
// An empty value means unspecified; the calculator assumes diesel.
type FuelType string

const (
	FuelTypePetrol FuelType = "petrol"
	FuelTypeDiesel FuelType = "diesel"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of roles a user may be created with.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
