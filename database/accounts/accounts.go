package accounts

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/zt6453928/lunatv-enhanced/database/dbcore"
	"github.com/zt6453928/lunatv-enhanced/database/models"
	"github.com/zt6453928/lunatv-enhanced/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const constantSalt = "fK9pLw3Vtq2x"

// CheckPassword 检查密码是否正确
//
// 如果密码正确，返回用户的 UUID 和 true；否则返回空字符串和 false
func CheckPassword(username, passwd string) (uuid string, success bool) {
	db := dbcore.GetDBInstance()
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return "", false
	}
	if user.Banned {
		return "", false
	}
	if hashPasswd(passwd) != user.Passwd {
		return "", false
	}
	return user.UUID, true
}

// CreateAccount 创建新账户
func CreateAccount(username, passwd string) (models.User, error) {
	db := dbcore.GetDBInstance()
	user := models.User{
		UUID:     uuid.New().String(),
		Username: username,
		Passwd:   hashPasswd(passwd),
		Role:     "user",
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ForceResetPassword 强制重置用户密码
func ForceResetPassword(username, passwd string) (err error) {
	db := dbcore.GetDBInstance()
	result := db.Model(&models.User{}).Where("username = ?", username).Update("passwd", hashPasswd(passwd))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// hashPasswd 对密码进行加盐哈希
func hashPasswd(passwd string) string {
	saltedPassword := passwd + constantSalt
	hash := sha256.New()
	hash.Write([]byte(saltedPassword))
	hashedPassword := base64.StdEncoding.EncodeToString(hash.Sum(nil))
	return hashedPassword
}

// CreateDefaultOwnerAccount 创建默认站长账户
func CreateDefaultOwnerAccount() (username, passwd string, err error) {
	db := dbcore.GetDBInstance()

	username = os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	passwd = os.Getenv("ADMIN_PASSWORD")
	if passwd == "" {
		passwd = utils.GeneratePassword()
	}

	user := models.User{
		UUID:     uuid.New().String(),
		Username: username,
		Passwd:   hashPasswd(passwd),
		Role:     "owner",
	}

	err = db.Create(&user).Error
	if err != nil {
		return "", "", err
	}

	return username, passwd, nil
}

func GetUserByUUID(uuid string) (user models.User, err error) {
	db := dbcore.GetDBInstance()
	err = db.Where("uuid = ?", uuid).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func GetUserByUsername(username string) (user models.User, err error) {
	db := dbcore.GetDBInstance()
	err = db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func DeleteAccountByUsername(username string) error {
	db := dbcore.GetDBInstance()
	return db.Where("username = ?", username).Delete(&models.User{}).Error
}

// SetBanned 封禁或解封用户
func SetBanned(username string, banned bool) error {
	db := dbcore.GetDBInstance()
	result := db.Model(&models.User{}).Where("username = ?", username).Update("banned", banned)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetUserRole 更新用户角色，与配置文档保持同步
func SetUserRole(username, role string) error {
	db := dbcore.GetDBInstance()
	result := db.Model(&models.User{}).Where("username = ?", username).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetUserTags 更新用户的用户组列表，与配置文档保持同步
func SetUserTags(username string, tags []string) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	db := dbcore.GetDBInstance()
	return db.Model(&models.User{}).Where("username = ?", username).Update("tags", string(data)).Error
}

// SetUserEnabledAPIs 更新用户的源/功能允许列表，与配置文档保持同步
func SetUserEnabledAPIs(username string, keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	db := dbcore.GetDBInstance()
	return db.Model(&models.User{}).Where("username = ?", username).Update("enabled_apis", string(data)).Error
}

// GetUserByOidcSub 根据 OIDC 主体标识查找用户
func GetUserByOidcSub(oidcSub string) (user models.User, err error) {
	db := dbcore.GetDBInstance()
	err = db.Where("oidc_sub = ?", oidcSub).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetOrCreateUserByOIDC 通过 OIDC 信息获取或创建用户
func GetOrCreateUserByOIDC(oidcSub, username string) (user models.User, err error) {
	db := dbcore.GetDBInstance()

	err = db.Where("oidc_sub = ?", oidcSub).First(&user).Error
	if err == nil {
		return user, nil
	}

	user = models.User{
		UUID:     uuid.New().String(),
		Username: username,
		Role:     "user",
		OidcSub:  oidcSub,
	}

	err = db.Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}
