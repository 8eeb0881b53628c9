package core

const (
	TempCharacterPrefix = "char_temp_"
	NewLogID            = "new"
)

const (
	RoleNarrator = "NAR"
	RoleChapter  = "CHAPTER"
)

const (
	AlignmentNone = "无"
)

// Alignments is the closed set of factions a character may belong to
var Alignments = []string{"ASF", "黎明会", "结社", "RW", "CRUIS", "血色圣杯", AlignmentNone}

const (
	BucketName   = "images"
	MaxImageSize = 5 << 20
)

const (
	DefaultStats        = "力量：C\n速度：C\n耐久：C\n射程：C\n精密度：C\n成长性：C"
	PlaceholderImageURL = "https://picsum.photos/800/400?grayscale"
	DefaultAvatarURL    = "https://picsum.photos/300/300"
	DefaultSignature    = "欢迎来到虚空档案..."
	DefaultProfileName  = "User"
	LoadingProfileName  = "Loading..."
	NewLogTitle         = "未命名戏录"
	NewLogSummary       = "开始一段新的记录..."
	StartLogTitle       = "%s 的新篇章"
	StartLogSummary     = "关于 %s 的新故事。"
)

const (
	AuthEventChannel   = "archive:auth"
	AuthEventSignedIn  = "signed_in"
	AuthEventSignedOut = "signed_out"
)
