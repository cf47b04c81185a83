package i18n

// Key identifies a user-visible message.
type Key string

const (
	ErrorGeneric       Key = "error.generic"
	ErrorPrefix        Key = "error.prefix"
	NetworkFailed      Key = "network.failed"
	FieldsRequired     Key = "fields.required"
	Loading            Key = "loading"
	NoData             Key = "no_data"
	NotSet             Key = "not_set"
	Created            Key = "created"
	Deleted            Key = "deleted"
	Cancelled          Key = "cancelled"
	SessionExpired     Key = "session.expired"
	SessionNotLoggedIn Key = "session.not_logged_in"
	AccessDenied       Key = "access.denied"
	TokenMissing       Key = "token.missing"

	LoginTitle         Key = "login.title"
	LoginEmail         Key = "login.email"
	LoginPassword      Key = "login.password"
	LoginInvalidEmail  Key = "login.invalid_email"
	LoginPasswordShort Key = "login.password_short"
	LoginSuccess       Key = "login.success"
	LogoutDone         Key = "logout.done"

	ProfileNoData  Key = "profile.no_data"
	ProfileNoRoles Key = "profile.no_roles"
	ProfileHello   Key = "profile.hello"

	RoleTeacher Key = "role.teacher"
	RoleStudent Key = "role.student"
	RoleAdmin   Key = "role.admin"
	RoleUnknown Key = "role.unknown"

	QRTitle          Key = "qr.title"
	QRMissingContext Key = "qr.missing_context"
	QRFailed         Key = "qr.failed"
	QRCountdown      Key = "qr.countdown"
	QRRefreshing     Key = "qr.refreshing"
	QRRequesting     Key = "qr.requesting"
	QRStopped        Key = "qr.stopped"
	QRHelp           Key = "qr.help"
	QRHelpTerminal   Key = "qr.help_terminal"
	QRSaved          Key = "qr.saved"

	ScheduleCreated      Key = "schedule.created"
	ScheduleCreateFailed Key = "schedule.create_failed"
	ScheduleLoadFailed   Key = "schedule.load_failed"
	ScheduleSlots        Key = "schedule.slots"
	ScheduleTimeOrder    Key = "schedule.time_order"
	ScheduleEmpty        Key = "schedule.empty"
	SelectLecturer       Key = "schedule.select_lecturer"

	JournalLoadFailed Key = "journal.load_failed"

	GroupNameRequired   Key = "group.name_required"
	SubjectNameRequired Key = "subject.name_required"
	ConfirmDeleteGroup  Key = "confirm.delete_group"
	ConfirmDeleteSubj   Key = "confirm.delete_subject"
	ConfirmDeleteUser   Key = "confirm.delete_user"
	UserRegistered      Key = "user.registered"

	StatsSummary Key = "stats.summary"

	HeaderID       Key = "header.id"
	HeaderName     Key = "header.name"
	HeaderEmail    Key = "header.email"
	HeaderPhone    Key = "header.phone"
	HeaderBirthday Key = "header.birthday"
	HeaderGroup    Key = "header.group"
	HeaderSubject  Key = "header.subject"
	HeaderTeacher  Key = "header.teacher"
	HeaderStart    Key = "header.start"
	HeaderEnd      Key = "header.end"
	HeaderRole     Key = "header.role"
	HeaderStudent  Key = "header.student"
)

// messages holds en, kk and ru text for every Key.
var messages = map[Key][3]string{
	ErrorGeneric:       {"Something went wrong while loading data", "Деректерді жүктеу кезінде қате пайда болды", "Ошибка при загрузке данных"},
	ErrorPrefix:        {"Error: %s", "Қате: %s", "Ошибка: %s"},
	NetworkFailed:      {"Could not reach the server", "Серверге қосылу мүмкін болмады", "Не удалось подключиться к серверу"},
	FieldsRequired:     {"All fields are required", "Барлық өрістерді толтырыңыз", "Все поля обязательны для заполнения"},
	Loading:            {"Loading...", "Жүктелуде...", "Загрузка..."},
	NoData:             {"No data", "Деректер жоқ", "Нет данных"},
	NotSet:             {"Not set", "Көрсетілмеген", "Не указан"},
	Created:            {"Created", "Құрылды", "Создано"},
	Deleted:            {"Deleted", "Жойылды", "Удалено"},
	Cancelled:          {"Cancelled", "Бас тартылды", "Отменено"},
	SessionExpired:     {"Session expired. Please sign in again", "Сессия мерзімі аяқталды. Қайта кіріңіз", "Сессия истекла. Пожалуйста, войдите снова"},
	SessionNotLoggedIn: {"You are not signed in. Run 'uniattend login'", "Сіз жүйеге кірмегенсіз. 'uniattend login' орындаңыз", "Вы не вошли в систему. Выполните 'uniattend login'"},
	AccessDenied:       {"Access denied", "Кіруге рұқсат жоқ", "Доступ запрещён"},
	TokenMissing:       {"Access token is missing", "Қатынас токені жоқ", "Токен доступа отсутствует"},

	LoginTitle:         {"Sign in to your account", "Аккаунтқа кіріңіз", "Войдите в аккаунт"},
	LoginEmail:         {"Your email", "Сіздің электрондық поштаңыз", "Ваша электронная почта"},
	LoginPassword:      {"Your password", "Сіздің құпия сөзіңіз", "Ваш пароль"},
	LoginInvalidEmail:  {"Invalid email format", "Қате формат", "Неверный формат email"},
	LoginPasswordShort: {"Password is too short (at least 6 characters)", "Құпия сөз қате (кемінде 6 символ)", "Пароль слишком короткий (минимум 6 символов)"},
	LoginSuccess:       {"Signed in as %s", "Сәлем, %s", "Вы вошли как %s"},
	LogoutDone:         {"Signed out", "Жүйеден шықтыңыз", "Вы вышли из системы"},

	ProfileNoData:  {"No user data", "Пайдаланушы деректері жоқ", "Данные пользователя отсутствуют"},
	ProfileNoRoles: {"No roles assigned", "Рөлдер көрсетілмеген", "Роли не указаны"},
	ProfileHello:   {"Hello, %s", "Сәлем, %s", "Здравствуйте, %s"},

	RoleTeacher: {"Teacher", "Оқытушы", "Преподаватель"},
	RoleStudent: {"Student", "Студент", "Студент"},
	RoleAdmin:   {"Administrator", "Әкімші", "Администратор"},
	RoleUnknown: {"Unknown role", "Белгісіз рөл", "Неизвестная роль"},

	QRTitle:          {"Attendance by QR code", "QR-код арқылы қатысу белгілеу", "Отметка посещаемости по QR-коду"},
	QRMissingContext: {"Not enough data to generate the QR code", "QR-кодты жасау үшін деректер жеткіліксіз", "Недостаточно данных для генерации QR-кода"},
	QRFailed:         {"The server could not generate a QR code", "Серверден QR-кодты жасау мүмкін болмады", "Сервер не смог сгенерировать QR-код"},
	QRCountdown:      {"Refreshes in %d s", "%d секундтан кейін жаңартылады", "Обновление через %d с"},
	QRRefreshing:     {"QR code expired, refreshing...", "QR-кодтың мерзімі аяқталды, жаңартылуда...", "Срок действия QR-кода истёк, обновление..."},
	QRRequesting:     {"Generating...", "Құрылуда...", "Генерация..."},
	QRStopped:        {"Stopped", "Тоқтатылды", "Остановлено"},
	QRHelp:           {"s stop • r resume • enter retry • q back", "s тоқтату • r жалғастыру • enter қайталау • q артқа", "s стоп • r продолжить • enter повторить • q назад"},
	QRHelpTerminal:   {"q back", "q артқа", "q назад"},
	QRSaved:          {"Code %s written to %s, shown until %s", "%s коды %s файлына жазылды, %s дейін көрсетіледі", "Код %s записан в %s, показывается до %s"},

	ScheduleCreated:      {"Schedule created successfully", "Кесте сәтті жасалды", "Расписание успешно создано"},
	ScheduleCreateFailed: {"Error while creating the schedule", "Кесте жасау кезінде қате пайда болды", "Ошибка при создании расписания"},
	ScheduleLoadFailed:   {"Error while loading the schedule", "Кестені жүктеу кезінде қате пайда болды", "Ошибка при загрузке расписания"},
	ScheduleSlots:        {"Suggested time slots", "Ұсынылған уақыт аралықтары", "Рекомендуемые интервалы времени"},
	ScheduleTimeOrder:    {"Start time must be before end time", "Басталу уақыты аяқталу уақытынан бұрын болуы керек", "Время начала должно быть раньше времени окончания"},
	ScheduleEmpty:        {"No classes scheduled", "Сабақтар жоқ", "Занятий нет"},
	SelectLecturer:       {"Select a teacher", "Оқытушыны таңдаңыз", "Выберите преподавателя"},

	JournalLoadFailed: {"Error while loading the journal", "Журналды жүктеу кезінде қате пайда болды", "Ошибка при загрузке журнала"},

	GroupNameRequired:   {"Group name is required", "Топ атауы міндетті", "Название группы обязательно"},
	SubjectNameRequired: {"Subject name is required", "Пән атауы міндетті", "Название предмета обязательно"},
	ConfirmDeleteGroup:  {"Are you sure you want to delete this group?", "Бұл топты жойғыңыз келе ме?", "Вы уверены, что хотите удалить эту группу?"},
	ConfirmDeleteSubj:   {"Are you sure you want to delete this subject?", "Бұл пәнді жойғыңыз келе ме?", "Вы уверены, что хотите удалить этот предмет?"},
	ConfirmDeleteUser:   {"Are you sure you want to delete this user?", "Бұл пайдаланушыны жойғыңыз келе ме?", "Вы уверены, что хотите удалить этого пользователя?"},
	UserRegistered:      {"User registered", "Пайдаланушы тіркелді", "Пользователь зарегистрирован"},

	StatsSummary: {"Present: %d of %d (%.1f%%)", "Қатысқандар: %d / %d (%.1f%%)", "Присутствовали: %d из %d (%.1f%%)"},

	HeaderID:       {"ID", "ID", "ID"},
	HeaderName:     {"Name", "Аты", "Имя"},
	HeaderEmail:    {"Email", "Электрондық пошта", "Эл. почта"},
	HeaderPhone:    {"Phone", "Телефон", "Телефон"},
	HeaderBirthday: {"Date of birth", "Туған күні", "Дата рождения"},
	HeaderGroup:    {"Group", "Топ", "Группа"},
	HeaderSubject:  {"Subject", "Пән", "Предмет"},
	HeaderTeacher:  {"Teacher", "Оқытушы", "Преподаватель"},
	HeaderStart:    {"Start time", "Басталу уақыты", "Время начала"},
	HeaderEnd:      {"End time", "Аяқталу уақыты", "Время окончания"},
	HeaderRole:     {"Role", "Рөл", "Роль"},
	HeaderStudent:  {"Student", "Студент", "Студент"},
}
