package i18n

// translations is the static string table for the registration flow.
var translations = map[string]Entry{
	"app.name":              {EN: "Travelintrips", ID: "Travelintrips"},
	"common.loading":        {EN: "Loading...", ID: "Memuat..."},
	"common.error":          {EN: "An error occurred", ID: "Terjadi kesalahan"},
	"common.success":        {EN: "Success", ID: "Berhasil"},
	"common.required":       {EN: "Required", ID: "Wajib"},
	"common.requiredFields": {EN: "Required fields", ID: "Kolom wajib diisi"},

	"auth.signin":          {EN: "Sign in", ID: "Masuk"},
	"auth.signup":          {EN: "Sign up", ID: "Daftar"},
	"auth.signout":         {EN: "Sign out", ID: "Keluar"},
	"auth.email":           {EN: "Email", ID: "Email"},
	"auth.password":        {EN: "Password", ID: "Kata sandi"},
	"auth.forgotPassword":  {EN: "Forgot password?", ID: "Lupa kata sandi?"},
	"auth.loginSuccess":    {EN: "Login successful! Redirecting...", ID: "Berhasil masuk! Mengalihkan..."},
	"auth.registerSuccess": {EN: "Account created successfully! You can now login.", ID: "Akun berhasil dibuat! Anda sekarang dapat masuk."},

	"register.title":    {EN: "Create your account", ID: "Buat akun Anda"},
	"register.subtitle": {EN: "Fill in your details to register", ID: "Isi data Anda untuk mendaftar"},
	"register.submit":   {EN: "Register", ID: "Daftar"},

	"tabs.personal":  {EN: "Personal Information", ID: "Informasi Pribadi"},
	"tabs.contact":   {EN: "Contact Information", ID: "Informasi Kontak"},
	"tabs.vehicle":   {EN: "Vehicle Information", ID: "Informasi Kendaraan"},
	"tabs.documents": {EN: "Documents", ID: "Dokumen"},

	"role.label":            {EN: "Role", ID: "Peran"},
	"role.select":           {EN: "Select a role", ID: "Pilih peran"},
	"role.admin":            {EN: "Admin", ID: "Admin"},
	"role.staffAdmin":       {EN: "Staff Admin", ID: "Staf Admin"},
	"role.staffTrips":       {EN: "Staff Trips", ID: "Staf Trips"},
	"role.staffTraffic":     {EN: "Staff Traffic", ID: "Staf Traffic"},
	"role.driverMitra":      {EN: "Driver Mitra", ID: "Driver Mitra"},
	"role.driverPerusahaan": {EN: "Driver Perusahaan", ID: "Driver Perusahaan"},

	"personal.firstName":  {EN: "First Name", ID: "Nama Depan"},
	"personal.lastName":   {EN: "Last Name", ID: "Nama Belakang"},
	"personal.fullName":   {EN: "Full Name", ID: "Nama Lengkap"},
	"personal.ktpAddress": {EN: "KTP Address", ID: "Alamat KTP"},
	"personal.ktpNumber":  {EN: "KTP Number", ID: "Nomor KTP"},
	"personal.religion":   {EN: "Religion", ID: "Agama"},
	"personal.ethnicity":  {EN: "Ethnicity", ID: "Suku"},
	"personal.education":  {EN: "Education", ID: "Pendidikan"},

	"contact.phoneNumber":       {EN: "Phone Number", ID: "Nomor Telepon"},
	"contact.familyPhoneNumber": {EN: "Family Phone Number", ID: "Nomor Telepon Keluarga"},
	"contact.licenseNumber":     {EN: "License Number (SIM)", ID: "Nomor SIM"},
	"contact.licenseExpiry":     {EN: "License Expiry Date", ID: "Tanggal Kedaluwarsa SIM"},

	"vehicle.name":     {EN: "Vehicle Name", ID: "Nama Kendaraan"},
	"vehicle.type":     {EN: "Vehicle Type", ID: "Jenis Kendaraan"},
	"vehicle.brand":    {EN: "Vehicle Brand", ID: "Merek Kendaraan"},
	"vehicle.plate":    {EN: "License Plate", ID: "Plat Nomor"},
	"vehicle.year":     {EN: "Vehicle Year", ID: "Tahun Kendaraan"},
	"vehicle.color":    {EN: "Vehicle Color", ID: "Warna Kendaraan"},
	"vehicle.status":   {EN: "Vehicle Status", ID: "Status Kendaraan"},
	"vehicle.required": {EN: "Vehicle information is required for Driver Mitra", ID: "Informasi kendaraan wajib untuk Driver Mitra"},

	"documents.selfiePhoto":  {EN: "Selfie Photo", ID: "Foto Selfie"},
	"documents.familyCard":   {EN: "Family Card (KK)", ID: "Kartu Keluarga (KK)"},
	"documents.ktpDocument":  {EN: "KTP Document", ID: "Dokumen KTP"},
	"documents.simDocument":  {EN: "SIM Document", ID: "Dokumen SIM"},
	"documents.skckDocument": {EN: "SKCK Document", ID: "Dokumen SKCK"},
	"documents.vehiclePhoto": {EN: "Vehicle Photo", ID: "Foto Kendaraan"},

	"error.emailRequired":    {EN: "Email is required", ID: "Email wajib diisi"},
	"error.passwordRequired": {EN: "Password is required", ID: "Kata sandi wajib diisi"},
	"error.roleRequired":     {EN: "Role is required", ID: "Peran wajib dipilih"},
	"error.invalidEmail":     {EN: "Invalid email format", ID: "Format email tidak valid"},
	"error.passwordTooShort": {EN: "Password must be at least 6 characters", ID: "Kata sandi minimal 6 karakter"},
}
