package provider

// SecretWords is a curated list of secrets per category for offline play.
// Categories keep the order they are offered in.
var SecretWords = []CategoryWords{
	{
		Name: "peliculas",
		Words: []string{
			"Titanic", "Matrix", "El Padrino", "Volver al Futuro", "Toy Story",
			"El Rey León", "Jurassic Park", "Star Wars", "Shrek", "Avatar",
			"Gladiador", "Rocky", "Tiburón", "Coco", "Frozen",
			"Los Cazafantasmas", "E.T.", "Inception", "Pulp Fiction", "Up",
			"Relatos Salvajes", "Nueve Reinas", "El Secreto de sus Ojos", "Titanes del Pacífico", "Ratatouille",
			"Harry Potter", "El Señor de los Anillos", "Indiana Jones", "Terminator", "Alien",
		},
	},
	{
		Name: "famosos",
		Words: []string{
			"Lionel Messi", "Diego Maradona", "Shakira", "Mirtha Legrand", "Charly García",
			"Gustavo Cerati", "Papa Francisco", "Tini Stoessel", "Ricardo Darín", "Susana Giménez",
			"Emanuel Ginóbili", "Bizarrap", "Duki", "Marcelo Tinelli", "Guillermo Francella",
			"Taylor Swift", "Beyoncé", "Elon Musk", "Cristiano Ronaldo", "Albert Einstein",
			"Frida Kahlo", "Michael Jackson", "Freddie Mercury", "Madonna", "Pelé",
		},
	},
	{
		Name: "lugares",
		Words: []string{
			"casino", "subte", "terraza", "callejón", "depósito",
			"templo", "fortaleza", "pirámide", "búnker", "torre",
			"puente", "túnel", "puerto", "fábrica", "estadio",
			"hospital", "escuela", "aeropuerto", "playa", "museo",
		},
	},
	{
		Name: "animales",
		Words: []string{
			"dragón", "fénix", "unicornio", "kraken", "serpiente",
			"tigre", "halcón", "lobo", "pantera", "cobra",
			"delfín", "pulpo", "escorpión", "araña", "escarabajo",
			"carpincho", "yaguareté", "cóndor", "pingüino", "hornero",
		},
	},
	{
		Name: "objetos",
		Words: []string{
			"diamante", "cristal", "espejo", "sombrero", "espada",
			"casco", "escudo", "guante", "brújula", "linterna",
			"silbato", "paraguas", "martillo", "ancla", "reloj de arena",
			"mate", "termo", "bombilla", "guitarra", "teclado",
		},
	},
}

// CategoryWords groups the secrets of one category
type CategoryWords struct {
	Name  string
	Words []string
}
