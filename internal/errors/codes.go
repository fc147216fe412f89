package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 토큰 폐기됨
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND" // 상품 없음

	// ==================== 장바구니/위시리스트 (CART_) ====================
	CartItemNotFound     = "CART_ITEM_NOT_FOUND"     // 장바구니 항목 없음
	CartEmpty            = "CART_EMPTY"              // 빈 장바구니
	WishlistItemNotFound = "WISHLIST_ITEM_NOT_FOUND" // 위시리스트 항목 없음

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"        // 주문 없음
	OrderNotCancellable = "ORDER_NOT_CANCELLABLE"  // 취소 불가 상태
	OrderInvalidAddress = "ORDER_INVALID_ADDRESS"  // 배송지 오류
	OrderInvalidPayment = "ORDER_INVALID_PAYMENT"  // 결제 수단 오류

	// ==================== 시세 (RATE_) ====================
	RateRefreshInProgress = "RATE_REFRESH_IN_PROGRESS" // 시세 갱신 중
	RateInvalidMetal      = "RATE_INVALID_METAL"       // 잘못된 금속/등급

	// ==================== 세금 (TAX_) ====================
	TaxInvalidInput = "TAX_INVALID_INPUT" // 잘못된 세금 계산 입력

	// ==================== 가격표 (PRICE_LIST_) ====================
	PriceListUnavailable = "PRICE_LIST_UNAVAILABLE" // 저장소 미설정
	PriceListPublishFail = "PRICE_LIST_PUBLISH_FAILED"

	// ==================== 서버 (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // 서버 오류
	InternalDatabase    = "INTERNAL_DATABASE"     // DB 오류
	InternalExternalAPI = "INTERNAL_EXTERNAL_API" // 외부 API 오류
)
