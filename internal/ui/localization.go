package ui

import (
	"fmt"

	"github.com/ytget/ytgrab/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyHeader            = "header"
	KeyURLLabel          = "url_label"
	KeyPathLabel         = "path_label"
	KeyDownloadAudio     = "download_audio"
	KeyDownloadVideo     = "download_video"
	KeyProgress          = "progress"
	KeyProgressComplete  = "progress_complete"
	KeySuccessTitle      = "success_title"
	KeyDownloadedTo      = "downloaded_to"
	KeyErrorAudio        = "error_audio"
	KeyErrorVideo        = "error_video"
	KeyConfirmTitle      = "confirm_title"
	KeyPromptTitle       = "prompt_title"
	KeyPromptSize        = "prompt_size"
	KeyPromptAvailable   = "prompt_available"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyFFmpegPath        = "ffmpeg_path"
	KeyAudioFormat       = "audio_format"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeyEnterPath         = "enter_path"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyErrorOpeningFile  = "error_opening_file"

	KeyStateIdle                 = "state_idle"
	KeyStateValidating           = "state_validating"
	KeyStateResolving            = "state_resolving"
	KeyStateAwaitingConfirmation = "state_awaiting_confirmation"
	KeyStateDownloading          = "state_downloading"
	KeyStateConverting           = "state_converting"
	KeyStateDone                 = "state_done"
	KeyStateFailed               = "state_failed"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// StateText returns the display name of a workflow state
func (l *Localization) StateText(state model.State) string {
	switch state {
	case model.StateValidating:
		return l.GetText(KeyStateValidating)
	case model.StateResolving:
		return l.GetText(KeyStateResolving)
	case model.StateAwaitingConfirmation:
		return l.GetText(KeyStateAwaitingConfirmation)
	case model.StateDownloading:
		return l.GetText(KeyStateDownloading)
	case model.StateConverting:
		return l.GetText(KeyStateConverting)
	case model.StateDone:
		return l.GetText(KeyStateDone)
	case model.StateFailed:
		return l.GetText(KeyStateFailed)
	default:
		return l.GetText(KeyStateIdle)
	}
}

// PromptText renders the confirmation prompt in the current language
func (l *Localization) PromptText(prompt model.Prompt) string {
	return fmt.Sprintf("%s: %s\n%s: %.1f MB\n%s: %.1f GB",
		l.GetText(KeyPromptTitle), prompt.Title,
		l.GetText(KeyPromptSize), prompt.SizeMB,
		l.GetText(KeyPromptAvailable), prompt.FreeGB,
	)
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube to mp3",
		KeyHeader:            "YouTube Downloader",
		KeyURLLabel:          "YouTube URL:",
		KeyPathLabel:         "Download path:",
		KeyDownloadAudio:     "Download Audio " + IconArrow + " .%s",
		KeyDownloadVideo:     "Download Video " + IconArrow + " .mp4",
		KeyProgress:          "Download progress",
		KeyProgressComplete:  "Download complete!",
		KeySuccessTitle:      "Success!",
		KeyDownloadedTo:      "video has been downloaded to: %s",
		KeyErrorAudio:        "Error downloading audio.",
		KeyErrorVideo:        "Error downloading video.",
		KeyConfirmTitle:      "Confirm download",
		KeyPromptTitle:       "Title",
		KeyPromptSize:        "Size",
		KeyPromptAvailable:   "Available",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyFFmpegPath:        "FFmpeg Path",
		KeyAudioFormat:       "Audio Format",
		KeyRevealOnComplete:  "Show file when done",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyEnterPath:         "Folder to save into",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyErrorOpeningFile:  "Error opening file",

		KeyStateIdle:                 "Ready",
		KeyStateValidating:           "Checking folder",
		KeyStateResolving:            "Fetching video info",
		KeyStateAwaitingConfirmation: "Waiting for confirmation",
		KeyStateDownloading:          "Downloading",
		KeyStateConverting:           "Converting",
		KeyStateDone:                 "Done",
		KeyStateFailed:               "Failed",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YouTube в mp3",
		KeyHeader:            "YouTube Загрузчик",
		KeyURLLabel:          "URL YouTube:",
		KeyPathLabel:         "Папка загрузки:",
		KeyDownloadAudio:     "Скачать аудио " + IconArrow + " .%s",
		KeyDownloadVideo:     "Скачать видео " + IconArrow + " .mp4",
		KeyProgress:          "Прогресс загрузки",
		KeyProgressComplete:  "Загрузка завершена!",
		KeySuccessTitle:      "Готово!",
		KeyDownloadedTo:      "файл сохранён в: %s",
		KeyErrorAudio:        "Ошибка загрузки аудио.",
		KeyErrorVideo:        "Ошибка загрузки видео.",
		KeyConfirmTitle:      "Подтвердите загрузку",
		KeyPromptTitle:       "Название",
		KeyPromptSize:        "Размер",
		KeyPromptAvailable:   "Свободно",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyFFmpegPath:        "Путь к FFmpeg",
		KeyAudioFormat:       "Формат аудио",
		KeyRevealOnComplete:  "Показать файл после загрузки",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyEnterPath:         "Папка для сохранения",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyErrorOpeningFile:  "Ошибка открытия файла",

		KeyStateIdle:                 "Готов",
		KeyStateValidating:           "Проверка папки",
		KeyStateResolving:            "Получение данных о видео",
		KeyStateAwaitingConfirmation: "Ожидание подтверждения",
		KeyStateDownloading:          "Загрузка",
		KeyStateConverting:           "Конвертация",
		KeyStateDone:                 "Готово",
		KeyStateFailed:               "Ошибка",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YouTube para mp3",
		KeyHeader:            "YouTube Downloader",
		KeyURLLabel:          "URL do YouTube:",
		KeyPathLabel:         "Pasta de download:",
		KeyDownloadAudio:     "Baixar Áudio " + IconArrow + " .%s",
		KeyDownloadVideo:     "Baixar Vídeo " + IconArrow + " .mp4",
		KeyProgress:          "Progresso do download",
		KeyProgressComplete:  "Download concluído!",
		KeySuccessTitle:      "Sucesso!",
		KeyDownloadedTo:      "arquivo salvo em: %s",
		KeyErrorAudio:        "Erro ao baixar áudio.",
		KeyErrorVideo:        "Erro ao baixar vídeo.",
		KeyConfirmTitle:      "Confirmar download",
		KeyPromptTitle:       "Título",
		KeyPromptSize:        "Tamanho",
		KeyPromptAvailable:   "Disponível",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyFFmpegPath:        "Caminho do FFmpeg",
		KeyAudioFormat:       "Formato de Áudio",
		KeyRevealOnComplete:  "Mostrar arquivo ao concluir",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyEnterPath:         "Pasta de destino",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",

		KeyStateIdle:                 "Pronto",
		KeyStateValidating:           "Verificando pasta",
		KeyStateResolving:            "Obtendo dados do vídeo",
		KeyStateAwaitingConfirmation: "Aguardando confirmação",
		KeyStateDownloading:          "Baixando",
		KeyStateConverting:           "Convertendo",
		KeyStateDone:                 "Concluído",
		KeyStateFailed:               "Falhou",
	}
}
